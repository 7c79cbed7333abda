package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-media-sync/cmd/mediasync/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "mediasync: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
