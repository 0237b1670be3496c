package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/lapsctl/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)
	err := cli.Execute(ctx, app, os.Args[1:])
	stop()

	if err != nil {
		os.Exit(1)
	}
}
