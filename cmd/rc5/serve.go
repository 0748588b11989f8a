package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/api"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve /encrypt, /decrypt, /params and /selftest over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen `ADDRESS` (overrides listen_address)",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	p, err := cfg.CipherParams()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	addr := cfg.ListenAddr
	if c.IsSet("listen") {
		addr = c.String("listen")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.ErrWriter, "rc5 api on %s, default %s\n", addr, p)
	if err := api.NewApi(p).Run(ctx, addr); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return nil
}
