package config

// Embedded per-device configuration. Key: device ID (the value placed in the
// context under CtxDeviceKey). Value: raw JSON for that device.

const cfgRemote = `{
  "remote": {
    "tick_ms": 50,
    "debounce_ms": 30,
    "power_on_hold_ms": 5000,
    "power_off_hold_ms": 2000,
    "short_press_ms": 600,
    "idle_ms": 60000,
    "inter_send_ms": 20,
    "inter_param_ms": 100,
    "settle_ms": 300,
    "startup_gap_ms": 50,
    "buttons": {"mode": 14, "up": 15, "down": 16, "pull": "up"},
    "leds": {"intensity": 18, "color": 19, "depth": 20, "ws2812": -1}
  },
  "radio": {
    "transport": "uart",
    "uart": {"id": "uart1", "baud": 115200, "tx_pin": 4, "rx_pin": 5},
    "ping_s": 5
  },
  "diag": {
    "interval": 10
  }
}`

const cfgSender = `{
  "sender": {
    "period_ms": 2000,
    "channels": ["L", "R"]
  },
  "radio": {
    "transport": "uart",
    "uart": {"id": "uart1", "baud": 115200, "tx_pin": 4, "rx_pin": 5},
    "ping_s": 5
  },
  "diag": {
    "interval": 10
  }
}`

var embeddedConfigs = map[string][]byte{
	"remote": []byte(cfgRemote),
	"sender": []byte(cfgSender),
}
