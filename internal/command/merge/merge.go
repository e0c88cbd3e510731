package merge

import (
	"errors"
	"fmt"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge <branch>" }
func (c *Command) Brief() string     { return "Merge another branch into the current branch" }

func (c *Command) Run(ctx *cli.Context) error {
	if len(ctx.Args) != 1 {
		return errors.New("Incorrect operands.")
	}
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}
	report, err := r.Merge(ctx.Args[0])
	if err != nil {
		return err
	}
	if report != "" {
		fmt.Println(report)
	}
	return nil
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
