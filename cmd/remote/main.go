// Command remote is the three-button remote controller firmware.
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
	"domeremote-go/services/remote"
	"domeremote-go/types"
	"domeremote-go/x/timex"
)

func halt(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	select {}
}

func main() {
	time.Sleep(hal.BootDelay)
	log := slog.New(slog.NewTextHandler(hal.LogWriter(), &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)
	log.Info("boot", "role", "remote")

	ctx := config.WithDevice(context.Background(), "remote")
	b := bus.NewBus(8)

	config.NewConfigService(log).Start(ctx, b.NewConnection("config"))

	radiolink.UARTDial = hal.DialUART
	link := radiolink.New(b.NewConnection("radio"), log, 0)
	go link.Run(ctx)

	diag.New(log, link).Start(ctx, b.NewConnection("diag"))

	cfg, ok := config.Await(ctx, b.NewConnection("main"), "remote", 2*time.Second, types.DefaultRemoteConfig())
	if !ok {
		log.Warn("no remote config, using defaults")
	}

	pins := hal.DefaultPinFactory()
	buttons, err := hal.NewButtons(pins, cfg.Buttons)
	if err != nil {
		halt(log, "buttons", err)
	}
	ind, err := hal.NewIndicator(pins, cfg.LEDs, log)
	if err != nil {
		halt(log, "indicator", err)
	}

	ctl := remote.NewController(buttons, link, ind, timex.NewSystem(), log, remote.TimingFrom(cfg))
	startSimulator(ctx, pins, cfg.Buttons, log)

	remote.NewService(b.NewConnection("remote"), ctl, log).Run(ctx)
}
