//go:build rp2040 || rp2350

package main

import "time"

const (
	board     = "pico"
	bootDelay = 1500 * time.Millisecond
)
