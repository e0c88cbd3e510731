package checkout

import (
	"errors"

	"github.com/keshon/lit/internal/cli"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string {
	return "checkout -- <file> | checkout <commit-id> -- <file> | checkout <branch>"
}
func (c *Command) Brief() string { return "Restore a file or switch to another branch" }

func (c *Command) Run(ctx *cli.Context) error {
	r, err := repo.Open(fs.NewOSFS(), ".")
	if err != nil {
		return err
	}

	args := ctx.Args
	switch {
	case len(args) == 2 && args[0] == "--":
		return r.CheckoutFile(args[1])
	case len(args) == 3 && args[1] == "--":
		return r.CheckoutFileAt(args[0], args[2])
	case len(args) == 1:
		return r.CheckoutBranch(args[0])
	default:
		return errors.New("Incorrect operands.")
	}
}

func init() {
	cli.RegisterCommand(cli.ApplyMiddlewares(&Command{}, cli.WithRepoCheck()))
}
