package commit

import (
	"errors"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "commit" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "commit <message>" }
func (c *Command) Brief() string     { return "Record the staged changes as a new commit" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return errors.New("Incorrect operands.")
	}
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}
	_, err = r.Commit(ctx.Args[0])
	return err
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
