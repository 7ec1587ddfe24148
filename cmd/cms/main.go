package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PebblesProgramming/miso-headless-cms-core/cmd/cms/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	cmd := commands.NewRootCommand(commands.BuildInfo{Version: version, Commit: commit, Date: date})

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
