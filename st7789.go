package panel

import (
	"fmt"
	"time"
)

// ST7789 commands (from st7789.pdf).
const (
	st7789GAMSET    = 0x26 // Gamma Set
	st7789DGMEN     = 0xBA // Digital Gamma Enable
	st7789PVGAMCTRL = 0xE0 // Positive Voltage Gamma Control
	st7789NVGAMCTRL = 0xE1 // Negative Voltage Gamma Control
	st7789DGMLUTR   = 0xE2 // Digital Gamma Look-up Table for Red
	st7789DGMLUTB   = 0xE3 // Digital Gamma Look-up Table for Blue
)

// Interface Pixel Format (COLMOD) values.
const (
	st7789ColorRGB565 = 0x55
	st7789ColorRGB666 = 0x66
)

// Controller timings.
const (
	st7789ResetPulse   = 10 * time.Millisecond
	st7789ResetRecover = 20 * time.Millisecond // datasheet requires 5ms after SWRESET
	st7789SleepOut     = 100 * time.Millisecond
)

// Frame memory size.
const (
	st7789RAMWidth  = 240
	st7789RAMHeight = 320
)

func init() {
	for cmd, name := range map[byte]string{
		st7789GAMSET:    "GAMSET",
		st7789DGMEN:     "DGMEN",
		st7789PVGAMCTRL: "PVGAMCTRL",
		st7789NVGAMCTRL: "NVGAMCTRL",
		st7789DGMLUTR:   "DGMLUTR",
		st7789DGMLUTB:   "DGMLUTB",
	} {
		commandNames[cmd] = name
	}
}

// ST7789 is a driver for the Sitronix ST7789 TFT LCD controller.
//
// The driver is not safe for concurrent use, callers sharing a panel must serialize access.
type ST7789 struct {
	dbi
	gamma Gamma
}

// NewST7789 creates a ST7789 panel on the provided bus. The controller is not touched until
// Reset and Init are called.
func NewST7789(io IO, config *DevConfig) (*ST7789, error) {
	base, err := newDBI("st7789", io, config)
	if err != nil {
		return nil, err
	}

	d := &ST7789{dbi: *base, gamma: config.Gamma}
	if d.gamma == nil {
		d.gamma = GammaDefault{}
	}
	if err = d.configure(config); err != nil {
		d.releasePin()
		return nil, err
	}

	debugf("st7789: new panel %s", d)
	return d, nil
}

func (d *ST7789) configure(config *DevConfig) error {
	switch config.BitsPerPixel {
	case 16:
		d.colmod = st7789ColorRGB565
		d.bitsPerPixel = 16
	case 18:
		// each component occupies the 6 high bits of a byte, so 3 bytes are sent per pixel
		d.colmod = st7789ColorRGB666
		d.bitsPerPixel = 24
	default:
		return fmt.Errorf("st7789: unsupported pixel width %d: %w", config.BitsPerPixel, ErrNotSupported)
	}
	return validateGamma(d.gamma)
}

func (d *ST7789) String() string {
	if d.colmod == st7789ColorRGB666 {
		return fmt.Sprintf("st7789.Panel{RGB666 madctl=0x%02x}", d.madctl)
	}
	return fmt.Sprintf("st7789.Panel{RGB565 madctl=0x%02x}", d.madctl)
}

// MemorySize returns the size of the controller frame memory.
func (d *ST7789) MemorySize() (width, height int) {
	return st7789RAMWidth, st7789RAMHeight
}

// Reset the controller.
func (d *ST7789) Reset() error {
	return d.reset(st7789ResetPulse, st7789ResetRecover)
}

// Init wakes the controller and programs orientation, pixel format and gamma.
func (d *ST7789) Init() (err error) {
	// the controller is in sleep mode with the display off after reset
	if err = d.command(cmdSLPOUT); err != nil {
		return
	}
	d.delay.Sleep(st7789SleepOut)

	if err = d.commands([][]byte{
		{cmdMADCTL, d.madctl},
		{cmdCOLMOD, d.colmod},
	}); err != nil {
		return
	}
	return d.commands(d.gamma.commands())
}

// Interface checks.
var (
	_ Panel = (*ST7789)(nil)
)
