//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"nimbus-go/config"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	cfg, err := config.Default("pico")
	if err != nil {
		println("config:", err.Error())
		return
	}
	if err := run(context.Background(), cfg, clock.New()); err != nil {
		println(err.Error())
	}
}
