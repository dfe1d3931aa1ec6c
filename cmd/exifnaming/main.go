package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rcliao/exifnaming/internal/cli"
	"github.com/rcliao/exifnaming/internal/logging"
)

func main() {
	logging.Init(false, logging.ParseLevel(os.Getenv("EXIFNAMING_LOG_LEVEL")))

	// Interrupting stops a batch before its next directory.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
