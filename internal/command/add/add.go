package add

import (
	"errors"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add <file>" }
func (c *Command) Brief() string     { return "Stage a file for the next commit" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return errors.New("Incorrect operands.")
	}
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}
	return r.Add(ctx.Args[0])
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
