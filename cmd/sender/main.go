// Command sender cycles a fixed command sequence over the radio link.
package main

import (
	"context"
	"log/slog"
	"time"

	"domeremote-go/bus"
	"domeremote-go/services/config"
	"domeremote-go/services/diag"
	"domeremote-go/services/hal"
	"domeremote-go/services/radiolink"
	"domeremote-go/services/sender"
	"domeremote-go/x/timex"
)

func main() {
	time.Sleep(hal.BootDelay)
	log := slog.New(slog.NewTextHandler(hal.LogWriter(), &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)
	log.Info("boot", "role", "sender")

	ctx := config.WithDevice(context.Background(), "sender")
	b := bus.NewBus(8)

	config.NewConfigService(log).Start(ctx, b.NewConnection("config"))

	radiolink.UARTDial = hal.DialUART
	link := radiolink.New(b.NewConnection("radio"), log, 0)
	go link.Run(ctx)

	diag.New(log, link).Start(ctx, b.NewConnection("diag"))

	sender.New(b.NewConnection("sender"), link, timex.NewSystem(), log).Run(ctx)
}
