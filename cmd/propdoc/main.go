package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/goliatone/go-propdoc/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
