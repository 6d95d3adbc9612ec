//go:build !(rp2040 || rp2350)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/urfave/cli/v2"

	"nimbus-go/config"
)

const (
	flagConfig   = "config"
	flagBoard    = "board"
	flagLogLevel = "log-level"
)

func main() {
	app := &cli.App{
		Name:  "nimbus",
		Usage: "run the nimbus core demo on the host board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load board configuration from TOML `FILE`; empty uses the embedded default",
			},
			&cli.StringFlag{
				Name:  flagBoard,
				Usage: "embedded board default to use when --config is empty",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "override the configured log level (debug, info, warn, error)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, clock.New())
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path := c.String(flagConfig); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default(c.String(flagBoard))
	}
	if err != nil {
		return nil, err
	}
	if lvl := c.String(flagLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}
