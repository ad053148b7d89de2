//go:build rp2040

package main

import (
	"context"
	"log/slog"

	"domeremote-go/services/hal"
	"domeremote-go/types"
)

// startSimulator is a no-op on hardware; the buttons are real.
func startSimulator(context.Context, hal.PinFactory, types.ButtonPins, *slog.Logger) {}
