package main

import (
	"context"

	"github.com/benbjohnson/clock"

	"nimbus-go/app"
	"nimbus-go/config"
	"nimbus-go/x/logx"
)

func run(ctx context.Context, cfg *config.Config, clk clock.Clock) error {
	log, err := logx.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(cfg, log, clk)
	if err != nil {
		log.Errorw("startup failed", "err", err)
		return err
	}
	return a.Run(ctx)
}
