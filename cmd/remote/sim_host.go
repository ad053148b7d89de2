//go:build !rp2040

package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"domeremote-go/services/hal"
	"domeremote-go/types"

	"github.com/google/shlex"
)

// startSimulator drives the fake button pins from stdin. Each line is
// "<button> [hold_ms]", e.g. "mode 5000" or "up".
func startSimulator(ctx context.Context, pins hal.PinFactory, cfg types.ButtonPins, log *slog.Logger) {
	f, ok := pins.(*hal.HostPinFactory)
	if !ok {
		return
	}
	byName := map[string]int{"mode": cfg.Mode, "up": cfg.Up, "down": cfg.Down}

	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if ctx.Err() != nil {
				return
			}
			args, err := shlex.Split(sc.Text())
			if err != nil || len(args) == 0 {
				continue
			}
			n, ok := byName[args[0]]
			if !ok {
				log.Warn("sim: unknown button", "name", args[0])
				continue
			}
			hold := 100 * time.Millisecond
			if len(args) > 1 {
				ms, err := strconv.Atoi(args[1])
				if err != nil || ms <= 0 {
					log.Warn("sim: bad hold", "arg", args[1])
					continue
				}
				hold = time.Duration(ms) * time.Millisecond
			}
			pin := f.Pin(n)
			pin.Set(false)
			time.Sleep(hold)
			pin.Set(true)
		}
	}()
	log.Info("sim: type '<mode|up|down> [hold_ms]' to press a button")
}
