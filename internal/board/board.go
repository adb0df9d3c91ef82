// Package board describes how a ST7789 panel is wired to a host, loaded from YAML profiles.
package board

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/panel"
	"github.com/BeatGlow/panel/conn"
)

// Errors
var (
	ErrInvalid       = errors.New("board: invalid profile")
	ErrUnknownPreset = errors.New("board: unknown preset")
)

// Supported controllers.
const (
	ST7789 = "st7789"
	ST7735 = "st7735"
)

// SPI is the bus the panel is attached to.
type SPI struct {
	// Port is the periph SPI port name, empty selects the first port.
	Port string `yaml:"port"`

	// Speed in Hz.
	Speed int64 `yaml:"speed"`

	// Mode is the SPI mode, 0 to 3.
	Mode int `yaml:"mode"`
}

// Pins lists the control lines. DC, CS and Backlight are periph pin names, Reset is a GPIO number
// (-1 when the reset line is not connected).
type Pins struct {
	DC        string `yaml:"dc"`
	CS        string `yaml:"cs,omitempty"`
	Reset     int    `yaml:"reset"`
	Backlight string `yaml:"backlight,omitempty"`
}

// Gamma selects the gamma program. At most one of Curve, Positive/Negative or Red/Blue may be set,
// Preset names one of the analog presets.
type Gamma struct {
	Preset   string `yaml:"preset,omitempty"`
	Curve    *int   `yaml:"curve,omitempty"`
	Positive []int  `yaml:"positive,omitempty"`
	Negative []int  `yaml:"negative,omitempty"`
	Red      string `yaml:"red,omitempty"`
	Blue     string `yaml:"blue,omitempty"`
}

// Profile is a panel board profile.
type Profile struct {
	Name string `yaml:"name"`

	// Controller is "st7789" or "st7735".
	Controller string `yaml:"controller"`

	SPI  SPI  `yaml:"spi"`
	Pins Pins `yaml:"pins"`

	// Geometry in the native orientation.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	XGap   int `yaml:"x_gap"`
	YGap   int `yaml:"y_gap"`

	// RGBOrder is "rgb" or "bgr".
	RGBOrder        string `yaml:"rgb_order"`
	BitsPerPixel    int    `yaml:"bits_per_pixel"`
	ResetActiveHigh bool   `yaml:"reset_active_high"`
	Invert          bool   `yaml:"invert"`

	// Rotation in degrees, 0, 90, 180 or 270.
	Rotation int `yaml:"rotation"`

	Gamma Gamma `yaml:"gamma,omitempty"`
}

// Default returns the profile of a bare 240x240 module on the first SPI port.
func Default() *Profile {
	return &Profile{
		Name:       "default",
		Controller: ST7789,
		SPI: SPI{
			Speed: int64(conn.DefaultSPISpeed / physic.Hertz),
			Mode:  0,
		},
		Pins: Pins{
			DC:    "GPIO25",
			Reset: 27,
		},
		Width:        240,
		Height:       240,
		RGBOrder:     "rgb",
		BitsPerPixel: 16,
		Invert:       true,
	}
}

var presets = map[string]Profile{
	"ttgo-t-display": {
		Name:   "ttgo-t-display",
		SPI:    SPI{Speed: 40_000_000},
		Pins:   Pins{DC: "GPIO16", CS: "GPIO5", Reset: 23, Backlight: "GPIO4"},
		Width:  135,
		Height: 240,
		XGap:   52,
		YGap:   40,
		Invert: true,
	},
	"pimoroni-240x240": {
		Name:   "pimoroni-240x240",
		SPI:    SPI{Port: "SPI0.1", Speed: 80_000_000},
		Pins:   Pins{DC: "GPIO9", Reset: -1, Backlight: "GPIO19"},
		Width:  240,
		Height: 240,
		Invert: true,
	},
	"st7735-green-tab": {
		Name:       "st7735-green-tab",
		Controller: ST7735,
		SPI:        SPI{Speed: 32_000_000},
		Pins:       Pins{DC: "GPIO24", CS: "GPIO8", Reset: 25, Backlight: "GPIO19"},
		Width:      128,
		Height:     160,
		XGap:       2,
		YGap:       1,
	},
	"waveshare-2inch": {
		Name:   "waveshare-2inch",
		SPI:    SPI{Port: "SPI0.0", Speed: 40_000_000},
		Pins:   Pins{DC: "GPIO25", Reset: 27, Backlight: "GPIO18"},
		Width:  240,
		Height: 320,
		Invert: true,
	},
}

// Presets returns the names of the built-in profiles.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of a built-in profile.
func Preset(name string) (*Profile, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(Presets(), ", "))
	}
	p.Normalize()
	return &p, nil
}

// Load reads a profile from a YAML file. Fields missing from the file keep their Default value.
func Load(path string) (*Profile, error) {
	if path == "" {
		return nil, errors.New("board: profile path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML profile.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Normalize fills in zero values with defaults.
func (p *Profile) Normalize() {
	p.Controller = strings.ToLower(p.Controller)
	if p.Controller == "" {
		p.Controller = ST7789
	}
	if p.SPI.Speed <= 0 {
		p.SPI.Speed = int64(conn.DefaultSPISpeed / physic.Hertz)
	}
	p.RGBOrder = strings.ToLower(p.RGBOrder)
	if p.RGBOrder == "" {
		p.RGBOrder = "rgb"
	}
	if p.BitsPerPixel == 0 {
		p.BitsPerPixel = 16
	}
	if p.Pins.Reset < 0 {
		p.Pins.Reset = panel.NoPin
	}
	p.Rotation = ((p.Rotation % 360) + 360) % 360
}

// Validate checks the profile for values the driver cannot use.
func (p *Profile) Validate() error {
	if p.Controller != ST7789 && p.Controller != ST7735 {
		return fmt.Errorf("%w: unknown controller %q", ErrInvalid, p.Controller)
	}
	if p.Controller == ST7735 && !p.Gamma.isZero() {
		return fmt.Errorf("%w: st7735 does not support gamma programs", ErrInvalid)
	}
	if p.Pins.DC == "" {
		return fmt.Errorf("%w: missing dc pin", ErrInvalid)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrInvalid, p.Width, p.Height)
	}
	if p.XGap < 0 || p.YGap < 0 {
		return fmt.Errorf("%w: negative gap (%d,%d)", ErrInvalid, p.XGap, p.YGap)
	}
	if _, err := conn.ParseSPIMode(p.SPI.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := p.rgbOrder(); err != nil {
		return err
	}
	if p.BitsPerPixel != 16 && p.BitsPerPixel != 18 {
		return fmt.Errorf("%w: bits_per_pixel must be 16 or 18, got %d", ErrInvalid, p.BitsPerPixel)
	}
	if p.Rotation%90 != 0 {
		return fmt.Errorf("%w: rotation must be a multiple of 90, got %d", ErrInvalid, p.Rotation)
	}
	if _, err := p.Gamma.Program(); err != nil {
		return err
	}
	return nil
}

func (p *Profile) rgbOrder() (panel.RGBOrder, error) {
	switch p.RGBOrder {
	case "rgb":
		return panel.RGB, nil
	case "bgr":
		return panel.BGR, nil
	default:
		return 0, fmt.Errorf("%w: unknown rgb_order %q", ErrInvalid, p.RGBOrder)
	}
}

// SPIMode returns the SPI mode.
func (p *Profile) SPIMode() spi.Mode {
	mode, _ := conn.ParseSPIMode(p.SPI.Mode)
	return mode
}

// SPISpeed returns the SPI clock.
func (p *Profile) SPISpeed() physic.Frequency {
	return physic.Frequency(p.SPI.Speed) * physic.Hertz
}

// DevConfig returns the driver configuration, gpio drives the reset pin.
func (p *Profile) DevConfig(gpio panel.GPIO) (*panel.DevConfig, error) {
	order, err := p.rgbOrder()
	if err != nil {
		return nil, err
	}
	gamma, err := p.Gamma.Program()
	if err != nil {
		return nil, err
	}
	config := &panel.DevConfig{
		ResetPin:        p.Pins.Reset,
		ResetActiveHigh: p.ResetActiveHigh,
		RGBOrder:        order,
		BitsPerPixel:    p.BitsPerPixel,
		Gamma:           gamma,
	}
	if config.ResetPin != panel.NoPin {
		config.GPIO = gpio
	}
	return config, nil
}

// ScreenConfig returns the screen geometry.
func (p *Profile) ScreenConfig() *panel.ScreenConfig {
	return &panel.ScreenConfig{
		Width:    p.Width,
		Height:   p.Height,
		XGap:     p.XGap,
		YGap:     p.YGap,
		Rotation: panel.Rotation(p.Rotation / 90),
		Invert:   p.Invert,
	}
}

var analogPresets = map[string]panel.GammaAnalog{
	"high_contrast": panel.GammaHighContrast,
	"st7789v":       panel.GammaST7789VDefault,
	"ertft024ips3":  panel.GammaERTFT024IPS3,
	"newhaven":      panel.GammaNewhaven,
	"tinydrm":       panel.GammaTinyDRM,
	"eatft02023ai":  panel.GammaEATFT02023AI,
	"optimized":     panel.GammaOptimized,
	"good_dark":     panel.GammaGoodDark,
}

var digitalTables = map[string][64]byte{
	"0.20": panel.DigitalGamma020,
	"0.45": panel.DigitalGamma045,
	"0.70": panel.DigitalGamma070,
	"1.80": panel.DigitalGamma180,
	"3.00": panel.DigitalGamma300,
}

func (g Gamma) isZero() bool {
	return g.Preset == "" && g.Curve == nil && len(g.Positive) == 0 && len(g.Negative) == 0 && g.Red == "" && g.Blue == ""
}

// Program returns the gamma program, nil selects the driver default.
func (g Gamma) Program() (panel.Gamma, error) {
	analog := len(g.Positive) > 0 || len(g.Negative) > 0
	digital := g.Red != "" || g.Blue != ""

	set := 0
	for _, ok := range []bool{g.Preset != "", g.Curve != nil, analog, digital} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: more than one gamma program selected", ErrInvalid)
	}

	switch {
	case g.Preset != "":
		if g.Preset == "default" {
			return nil, nil
		}
		preset, ok := analogPresets[g.Preset]
		if !ok {
			return nil, fmt.Errorf("%w: unknown gamma preset %q", ErrInvalid, g.Preset)
		}
		return preset, nil

	case g.Curve != nil:
		if *g.Curve < 0 || *g.Curve > 3 {
			return nil, fmt.Errorf("%w: gamma curve must be 0 to 3, got %d", ErrInvalid, *g.Curve)
		}
		return panel.GammaPredefined{Curve: uint8(*g.Curve)}, nil

	case analog:
		var curve panel.GammaAnalog
		if err := copyCurve(curve.Positive[:], g.Positive, "positive"); err != nil {
			return nil, err
		}
		if err := copyCurve(curve.Negative[:], g.Negative, "negative"); err != nil {
			return nil, err
		}
		return curve, nil

	case digital:
		var (
			program panel.GammaDigital
			err     error
		)
		if program.Red, err = digitalTable(g.Red); err != nil {
			return nil, err
		}
		if program.Blue, err = digitalTable(g.Blue); err != nil {
			return nil, err
		}
		return program, nil
	}
	return nil, nil
}

func copyCurve(dst []byte, src []int, name string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %s gamma curve needs %d values, got %d", ErrInvalid, name, len(dst), len(src))
	}
	for i, v := range src {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("%w: %s gamma value %d out of range", ErrInvalid, name, v)
		}
		dst[i] = byte(v)
	}
	return nil
}

func digitalTable(name string) (*[64]byte, error) {
	if name == "" {
		return nil, nil
	}
	table, ok := digitalTables[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown digital gamma table %q", ErrInvalid, name)
	}
	return &table, nil
}
