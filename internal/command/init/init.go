package initcmd

import (
	"errors"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "init" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "init" }
func (c *Command) Brief() string     { return "Create a new repository in the current directory" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 0 {
		return errors.New("Incorrect operands.")
	}
	_, err := repo.Init(fs.NewOSFS(), ".")
	return err
}

func init() {
	cli.RegisterCommand(&Command{})
}
