package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/panel"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 40*physic.MegaHertz, p.SPISpeed())
	assert.Equal(t, spi.Mode0, p.SPIMode())
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`
name: lilygo
spi:
  port: SPI1.0
  speed: 62500000
  mode: 3
pins:
  dc: GPIO16
  cs: GPIO5
  reset: -1
width: 135
height: 240
x_gap: 52
y_gap: 40
rgb_order: BGR
bits_per_pixel: 18
rotation: 450
gamma:
  curve: 2
`))
	require.NoError(t, err)

	assert.Equal(t, "lilygo", p.Name)
	assert.Equal(t, ST7789, p.Controller)
	assert.Equal(t, "SPI1.0", p.SPI.Port)
	assert.Equal(t, 62500*physic.KiloHertz, p.SPISpeed())
	assert.Equal(t, spi.Mode3, p.SPIMode())
	assert.Equal(t, "bgr", p.RGBOrder)
	assert.Equal(t, 90, p.Rotation)
	assert.True(t, p.Invert, "unset fields keep their default")

	dev, err := p.DevConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, panel.NoPin, dev.ResetPin)
	assert.Equal(t, panel.BGR, dev.RGBOrder)
	assert.Equal(t, 18, dev.BitsPerPixel)
	assert.Equal(t, panel.GammaPredefined{Curve: 2}, dev.Gamma)
	assert.Nil(t, dev.GPIO)

	assert.Equal(t, &panel.ScreenConfig{
		Width:    135,
		Height:   240,
		XGap:     52,
		YGap:     40,
		Rotation: panel.Rotate90,
		Invert:   true,
	}, p.ScreenConfig())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing dc", "pins: {dc: ''}"},
		{"controller", "controller: ili9341"},
		{"st7735 gamma", "controller: st7735\ngamma: {curve: 1}"},
		{"zero width", "width: 0"},
		{"negative gap", "x_gap: -1"},
		{"spi mode", "spi: {mode: 4}"},
		{"rgb order", "rgb_order: grb"},
		{"bits per pixel", "bits_per_pixel: 24"},
		{"rotation", "rotation: 45"},
		{"gamma curve", "gamma: {curve: 4}"},
		{"gamma preset", "gamma: {preset: sepia}"},
		{"gamma conflict", "gamma: {preset: newhaven, curve: 1}"},
		{"gamma analog length", "gamma: {positive: [1, 2, 3], negative: [1, 2, 3]}"},
		{"gamma digital table", "gamma: {red: '2.20'}"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("width: [1"))
	assert.Error(t, err)
}

func TestGammaProgram(t *testing.T) {
	curve := 0
	tests := []struct {
		name  string
		gamma Gamma
		want  panel.Gamma
	}{
		{"none", Gamma{}, nil},
		{"default", Gamma{Preset: "default"}, nil},
		{"preset", Gamma{Preset: "newhaven"}, panel.GammaNewhaven},
		{"curve", Gamma{Curve: &curve}, panel.GammaPredefined{Curve: 0}},
		{"analog", Gamma{
			Positive: []int{0xD0, 0x00, 0x02, 0x07, 0x0A, 0x28, 0x32, 0x44, 0x42, 0x06, 0x0E, 0x12, 0x14, 0x17},
			Negative: []int{0xD0, 0x00, 0x02, 0x07, 0x0A, 0x28, 0x31, 0x54, 0x47, 0x0E, 0x1C, 0x17, 0x1B, 0x1E},
		}, panel.GammaTinyDRM},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.gamma.Program()
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	got, err := Gamma{Red: "0.45"}.Program()
	require.NoError(t, err)
	digital, ok := got.(panel.GammaDigital)
	require.True(t, ok)
	require.NotNil(t, digital.Red)
	assert.Equal(t, panel.DigitalGamma045, *digital.Red)
	assert.Nil(t, digital.Blue)
}

func TestPreset(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			p, err := Preset(name)
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, name, p.Name)
			assert.LessOrEqual(t, p.Width+p.XGap, 240)
			assert.LessOrEqual(t, p.Height+p.YGap, 320)
		})
	}

	p, err := Preset("TTGO-T-Display")
	require.NoError(t, err)
	assert.Equal(t, 52, p.XGap)

	// presets are copies
	p.XGap = 0
	p, err = Preset("ttgo-t-display")
	require.NoError(t, err)
	assert.Equal(t, 52, p.XGap)

	p, err = Preset("st7735-green-tab")
	require.NoError(t, err)
	assert.Equal(t, ST7735, p.Controller)

	_, err = Preset("nokia-5110")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestLoad(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 240\nheight: 320\ninvert: false\n"), 0o600))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, p.Height)
	assert.False(t, p.Invert)
}
