package config

import (
	"errors"
	"fmt"

	"github.com/keshon/lit/internal/cli"
	litconfig "github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "config" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "config (get <key> | set <key> <value>)" }
func (c *Command) Brief() string     { return "Read or write repository options, e.g. user.name" }

func (c *Command) Run(ctx *cli.Context) error {
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}

	args := ctx.Args
	switch {
	case len(args) == 2 && args[0] == "get":
		val, err := litconfig.GetOption(r.FS, r.Config, args[1])
		if err != nil {
			return err
		}
		fmt.Println(val)
		return nil
	case len(args) == 3 && args[0] == "set":
		return litconfig.SetOption(r.FS, r.Config, args[1], args[2])
	default:
		return errors.New("Incorrect operands.")
	}
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
