package cli

import (
	"github.com/keshon/lit/internal/config"
	"github.com/keshon/lit/internal/fs"
	"github.com/keshon/lit/internal/repo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx *Context) error
}

func (w *wrappedCommand) Run(ctx *Context) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps a command with any number of middlewares
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithRepoCheck ensures an initialized repository exists before running the
// command.
func WithRepoCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *Context) error {
				cfg := config.NewRepoConfig(".")
				if !fs.NewOSFS().Exists(cfg.HeadPath()) {
					return repo.ErrNotRepo
				}
				return cmd.Run(ctx)
			},
		}
	}
}
