package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/invitekeeper/internal/client/cli"
	"github.com/dmitrijs2005/invitekeeper/internal/client/config"
)

func main() {
	cfg, args, err := config.LoadConfig(os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
