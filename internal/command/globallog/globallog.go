package globallog

import (
	"errors"
	"fmt"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "global-log" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "global-log" }
func (c *Command) Brief() string     { return "Show every commit ever made, across all branches" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 0 {
		return errors.New("Incorrect operands.")
	}
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}
	out, err := r.GlobalLog()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
