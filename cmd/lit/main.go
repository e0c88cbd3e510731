package main

import (
	"fmt"
	"os"

	"github.com/keshon/lit/internal/cli"

	_ "github.com/keshon/lit/internal/command/add"
	_ "github.com/keshon/lit/internal/command/branch"
	_ "github.com/keshon/lit/internal/command/checkout"
	_ "github.com/keshon/lit/internal/command/commit"
	_ "github.com/keshon/lit/internal/command/config"
	_ "github.com/keshon/lit/internal/command/find"
	_ "github.com/keshon/lit/internal/command/globallog"
	_ "github.com/keshon/lit/internal/command/init"
	_ "github.com/keshon/lit/internal/command/log"
	_ "github.com/keshon/lit/internal/command/merge"
	_ "github.com/keshon/lit/internal/command/reset"
	_ "github.com/keshon/lit/internal/command/rm"
	_ "github.com/keshon/lit/internal/command/rmbranch"
	_ "github.com/keshon/lit/internal/command/status"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Please enter a command.")
		fmt.Println("Usage: lit <command> [args...]")
		for _, cmd := range cli.AllCommands() {
			fmt.Printf("  %-12s %s\n", cmd.Name(), cmd.Brief())
		}
		os.Exit(0)
	}

	cmd, ok := cli.GetCommand(os.Args[1])
	if !ok {
		fmt.Println("No command with that name exists.")
		os.Exit(1)
	}

	ctx := &cli.Context{Args: os.Args[2:]}
	if err := cmd.Run(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
