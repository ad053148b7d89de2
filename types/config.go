package types

// Configuration documents, published retained on "config/<key>".

// RemoteConfig is "config/remote". Zero durations fall back to defaults.
type RemoteConfig struct {
	TickMs        int `json:"tick_ms"`
	DebounceMs    int `json:"debounce_ms"`
	PowerOnHoldMs int `json:"power_on_hold_ms"`
	PowerOffMs    int `json:"power_off_hold_ms"`
	ShortPressMs  int `json:"short_press_ms"`
	IdleMs        int `json:"idle_ms"`
	InterSendMs   int `json:"inter_send_ms"`
	InterParamMs  int `json:"inter_param_ms"`
	SettleMs      int `json:"settle_ms"`
	StartupGapMs  int `json:"startup_gap_ms"`

	Buttons ButtonPins `json:"buttons"`
	LEDs    LEDPins    `json:"leds"`
}

type ButtonPins struct {
	Mode int    `json:"mode"`
	Up   int    `json:"up"`
	Down int    `json:"down"`
	Pull string `json:"pull,omitempty"` // "up" (default), "down", "none"
}

// LEDPins drives the indicator. Mode LEDs light one per mode; WS2812 >= 0
// selects a single RGB pixel instead.
type LEDPins struct {
	Intensity int `json:"intensity"`
	Color     int `json:"color"`
	Depth     int `json:"depth"`
	WS2812    int `json:"ws2812"`
}

func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		TickMs:        50,
		DebounceMs:    30,
		PowerOnHoldMs: 5000,
		PowerOffMs:    2000,
		ShortPressMs:  600,
		IdleMs:        60000,
		InterSendMs:   20,
		InterParamMs:  100,
		SettleMs:      300,
		StartupGapMs:  50,
		Buttons:       ButtonPins{Mode: 14, Up: 15, Down: 16, Pull: "up"},
		LEDs:          LEDPins{Intensity: 18, Color: 19, Depth: 20, WS2812: -1},
	}
}

// RadioConfig is "config/radio".
type RadioConfig struct {
	Transport string      `json:"transport"` // "uart" or "stub"
	UART      *UARTConfig `json:"uart,omitempty"`
	PingSec   int         `json:"ping_s,omitempty"`
}

// UARTConfig carries what the platform dialler needs to open the port.
type UARTConfig struct {
	ID     string `json:"id"`               // "uart0" / "uart1"
	Driver string `json:"driver,omitempty"` // "uartx" (default) or "machine"
	Baud   uint32 `json:"baud"`
	TxPin  int    `json:"tx_pin"`
	RxPin  int    `json:"rx_pin"`
}

// SenderConfig is "config/sender".
type SenderConfig struct {
	PeriodMs int      `json:"period_ms"`
	Channels []string `json:"channels,omitempty"` // "L","R","M"
}

func DefaultSenderConfig() SenderConfig {
	return SenderConfig{PeriodMs: 2000, Channels: []string{"L", "R"}}
}

// DiagConfig is "config/diag".
type DiagConfig struct {
	Interval int `json:"interval"` // seconds
}
