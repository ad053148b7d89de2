//go:build rp2040

package hal

import (
	"image/color"
	"machine"

	"domeremote-go/types"

	"tinygo.org/x/drivers/ws2812"
)

var modeColors = [types.NumModes]color.RGBA{
	types.ModeIntensity: {R: 0x20, G: 0x20, B: 0x20},
	types.ModeColor:     {R: 0x30, G: 0x18, B: 0x00},
	types.ModeDepth:     {R: 0x00, G: 0x00, B: 0x30},
}

// PixelIndicator shows the mode as the colour of a single WS2812 pixel.
type PixelIndicator struct {
	dev ws2812.Device
	buf [1]color.RGBA
}

func NewPixelIndicator(pin machine.Pin) *PixelIndicator {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &PixelIndicator{dev: ws2812.NewWS2812(pin)}
}

func (p *PixelIndicator) SetIndicator(mode types.Mode, powered bool) {
	p.buf[0] = color.RGBA{}
	if powered && mode < types.NumModes {
		p.buf[0] = modeColors[mode]
	}
	_ = p.dev.WriteColors(p.buf[:])
}
