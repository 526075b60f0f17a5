package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notevault/internal/client/cli"
	"github.com/dmitrijs2005/notevault/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Bare usage errors already printed the help text.
		if err != cli.ErrUsage {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	c, err := cli.Dial(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	return cli.NewApp(c, os.Stdin, os.Stdout).Run(ctx, args)
}
