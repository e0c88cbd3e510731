package find

import (
	"errors"
	"fmt"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "find" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "find <commit-message>" }
func (c *Command) Brief() string     { return "List ids of commits with the given message" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return errors.New("Incorrect operands.")
	}
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}
	out, err := r.Find(ctx.Args[0])
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
