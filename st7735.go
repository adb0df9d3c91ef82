package panel

import (
	"fmt"
	"time"
)

// ST7735 commands (from st7735.pdf).
const (
	st7735FRMCTR1 = 0xB1 // Frame Rate Control (normal mode)
	st7735FRMCTR2 = 0xB2 // Frame Rate Control (idle mode)
	st7735FRMCTR3 = 0xB3 // Frame Rate Control (partial mode)
	st7735INVCTR  = 0xB4 // Display Inversion Control
	st7735PWCTR1  = 0xC0
	st7735PWCTR2  = 0xC1
	st7735PWCTR3  = 0xC2
	st7735PWCTR4  = 0xC3
	st7735PWCTR5  = 0xC4
	st7735VMCTR1  = 0xC5 // VCOM Control
	st7735GMCTRP1 = 0xE0 // Positive Gamma Correction
	st7735GMCTRN1 = 0xE1 // Negative Gamma Correction
)

// Interface Pixel Format (COLMOD) values.
const (
	st7735ColorRGB565 = 0x05
	st7735ColorRGB666 = 0x06
)

// Controller timings.
const (
	st7735ResetPulse   = 100 * time.Millisecond
	st7735ResetRecover = 150 * time.Millisecond
	st7735SleepOut     = 150 * time.Millisecond
)

// Frame memory size.
const (
	st7735RAMWidth  = 132
	st7735RAMHeight = 162
)

// ST7735 is a driver for the Sitronix ST7735 TFT LCD controller. It shares the command bus
// protocol of the ST7789 but has a smaller frame memory and its own power and gamma setup.
type ST7735 struct {
	dbi
}

// NewST7735 creates a ST7735 panel on the provided bus. The Gamma option is not supported, the
// controller is programmed with a fixed gamma curve.
func NewST7735(io IO, config *DevConfig) (*ST7735, error) {
	base, err := newDBI("st7735", io, config)
	if err != nil {
		return nil, err
	}

	d := &ST7735{dbi: *base}
	switch {
	case config.Gamma != nil:
		err = fmt.Errorf("st7735: custom gamma: %w", ErrNotSupported)
	case config.BitsPerPixel == 16:
		d.colmod = st7735ColorRGB565
		d.bitsPerPixel = 16
	case config.BitsPerPixel == 18:
		d.colmod = st7735ColorRGB666
		d.bitsPerPixel = 24
	default:
		err = fmt.Errorf("st7735: unsupported pixel width %d: %w", config.BitsPerPixel, ErrNotSupported)
	}
	if err != nil {
		d.releasePin()
		return nil, err
	}

	debugf("st7735: new panel %s", d)
	return d, nil
}

func (d *ST7735) String() string {
	return fmt.Sprintf("st7735.Panel{%d bpp madctl=0x%02x}", d.bitsPerPixel, d.madctl)
}

// MemorySize returns the size of the controller frame memory.
func (d *ST7735) MemorySize() (width, height int) {
	return st7735RAMWidth, st7735RAMHeight
}

// Reset the controller.
func (d *ST7735) Reset() error {
	return d.reset(st7735ResetPulse, st7735ResetRecover)
}

// Init wakes the controller and programs frame rate, power, orientation, pixel format and gamma.
func (d *ST7735) Init() (err error) {
	if err = d.command(cmdSLPOUT); err != nil {
		return
	}
	d.delay.Sleep(st7735SleepOut)

	return d.commands([][]byte{
		{st7735FRMCTR1, 0x01, 0x2C, 0x2D},
		{st7735FRMCTR2, 0x01, 0x2C, 0x2D},
		{st7735FRMCTR3, 0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D},
		{st7735INVCTR, 0x07},
		{st7735PWCTR1, 0xA2, 0x02, 0x84},
		{st7735PWCTR2, 0xC5},
		{st7735PWCTR3, 0x0A, 0x00},
		{st7735PWCTR4, 0x8A, 0x2A},
		{st7735PWCTR5, 0x8A, 0xEE},
		{st7735VMCTR1, 0x0E},
		{cmdMADCTL, d.madctl},
		{cmdCOLMOD, d.colmod},
		{st7735GMCTRP1, 0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D, 0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10},
		{st7735GMCTRN1, 0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D, 0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10},
		{cmdNORON},
	})
}

// Interface checks.
var (
	_ Panel = (*ST7735)(nil)
)
