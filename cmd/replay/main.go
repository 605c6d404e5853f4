package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/pitchlog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(cli.ExitCode(err))
}
