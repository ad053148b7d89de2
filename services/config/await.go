package config

import (
	"context"
	"time"

	"domeremote-go/bus"
	"domeremote-go/services/internal/util"
)

// Await waits up to timeout for the retained "config/<key>" document and
// decodes it over def. It returns def unchanged when nothing usable arrives.
func Await[T any](ctx context.Context, conn *bus.Connection, key string, timeout time.Duration, def T) (T, bool) {
	sub := conn.Subscribe(bus.T(configPrefix, key))
	defer conn.Unsubscribe(sub)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case msg := <-sub.Channel():
		out := def
		if err := util.DecodeJSON(msg.Payload, &out); err == nil {
			return out, true
		}
	}
	return def, false
}
