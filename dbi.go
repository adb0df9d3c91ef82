package panel

import (
	"fmt"
	"time"
)

// MIPI DCS commands shared by the ST77xx controllers.
const (
	cmdNOP     = 0x00
	cmdSWRESET = 0x01 // Software Reset
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11 // Sleep Out
	cmdNORON   = 0x13 // Normal Display Mode On
	cmdINVOFF  = 0x20 // Display Inversion Off
	cmdINVON   = 0x21 // Display Inversion On
	cmdDISPOFF = 0x28 // Display Off
	cmdDISPON  = 0x29 // Display On
	cmdCASET   = 0x2A // Column Address Set
	cmdRASET   = 0x2B // Row Address Set
	cmdRAMWR   = 0x2C // Memory Write
	cmdMADCTL  = 0x36 // Memory Data Access Control
	cmdCOLMOD  = 0x3A // Interface Pixel Format
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                         byte = 1 << iota // D0: reserved
	_                                          // D1: reserved
	madctlDisplayDataLatch                     // D2: MH
	madctlBGR                                  // D3: RGB/BGR
	madctlLineAddressOrder                     // D4: ML
	madctlPageColumnOrder                      // D5: MV
	madctlColumnAddressOrder                   // D6: MX
	madctlPageAddressOrder                     // D7: MY
)

var commandNames = map[byte]string{
	cmdNOP:     "NOP",
	cmdSWRESET: "SWRESET",
	cmdSLPIN:   "SLPIN",
	cmdSLPOUT:  "SLPOUT",
	cmdNORON:   "NORON",
	cmdINVOFF:  "INVOFF",
	cmdINVON:   "INVON",
	cmdDISPOFF: "DISPOFF",
	cmdDISPON:  "DISPON",
	cmdCASET:   "CASET",
	cmdRASET:   "RASET",
	cmdRAMWR:   "RAMWR",
	cmdMADCTL:  "MADCTL",
	cmdCOLMOD:  "COLMOD",
}

func commandName(cmd byte) string {
	if name, ok := commandNames[cmd]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", cmd)
}

// dbi holds the state shared by controllers with a MIPI-DBI command set: the bus, the reset
// line and the shadow copies of the write-only MADCTL and COLMOD registers.
type dbi struct {
	name         string
	io           IO
	gpio         GPIO
	delay        Delay
	resetPin     int
	resetLevel   bool
	xGap         int
	yGap         int
	bitsPerPixel int  // bits per pixel on the bus
	madctl       byte // last value written to MADCTL
	colmod       byte // last value written to COLMOD
}

// newDBI validates the common configuration and reserves the reset pin.
func newDBI(name string, io IO, config *DevConfig) (*dbi, error) {
	if io == nil || config == nil {
		return nil, ErrInvalidArgument
	}
	if config.ResetPin >= 0 && config.GPIO == nil {
		return nil, fmt.Errorf("%s: reset pin %d without GPIO: %w", name, config.ResetPin, ErrInvalidArgument)
	}

	d := &dbi{
		name:       name,
		io:         io,
		gpio:       config.GPIO,
		delay:      config.Delay,
		resetPin:   config.ResetPin,
		resetLevel: config.ResetActiveHigh,
	}
	if d.resetPin < 0 {
		d.resetPin = NoPin
	}
	if d.delay == nil {
		d.delay = SystemDelay
	}

	// the reset line starts released so the controller keeps running until Reset
	if d.resetPin != NoPin {
		if err := d.gpio.ConfigureOutput(d.resetPin, !d.resetLevel); err != nil {
			return nil, &GPIOError{Pin: d.resetPin, Op: "configure", Err: err}
		}
	}

	switch config.RGBOrder {
	case RGB:
	case BGR:
		d.madctl |= madctlBGR
	default:
		d.releasePin()
		return nil, fmt.Errorf("%s: unsupported color order %s: %w", name, config.RGBOrder, ErrNotSupported)
	}
	return d, nil
}

func (d *dbi) releasePin() {
	if d.resetPin != NoPin {
		_ = d.gpio.Release(d.resetPin)
	}
}

// MADCTL returns the last value written to the memory data access control register.
func (d *dbi) MADCTL() byte {
	return d.madctl
}

// COLMOD returns the interface pixel format register value.
func (d *dbi) COLMOD() byte {
	return d.colmod
}

// BitsPerPixel returns the number of bits a pixel occupies on the bus.
func (d *dbi) BitsPerPixel() int {
	return d.bitsPerPixel
}

// Gap returns the frame memory offset.
func (d *dbi) Gap() (x, y int) {
	return d.xGap, d.yGap
}

// Close releases the reset pin. The controller is left in its current state.
func (d *dbi) Close() (err error) {
	if d.io == nil {
		return ErrClosed
	}
	if d.resetPin != NoPin {
		if err = d.gpio.Release(d.resetPin); err != nil {
			err = &GPIOError{Pin: d.resetPin, Op: "release", Err: err}
		}
	}
	debugf("%s: del panel", d.name)
	d.io = nil
	return
}

func (d *dbi) command(cmd byte, params ...byte) error {
	if d.io == nil {
		return ErrClosed
	}
	if err := d.io.TxParam(cmd, params...); err != nil {
		return &TxError{Cmd: cmd, Err: err}
	}
	return nil
}

func (d *dbi) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

// reset pulses the reset line, or sends SWRESET and waits recover when there is none.
func (d *dbi) reset(pulse, recover time.Duration) (err error) {
	if d.io == nil {
		return ErrClosed
	}

	if d.resetPin == NoPin {
		if err = d.command(cmdSWRESET); err != nil {
			return
		}
		d.delay.Sleep(recover)
		return
	}

	if err = d.gpio.SetLevel(d.resetPin, d.resetLevel); err != nil {
		return &GPIOError{Pin: d.resetPin, Op: "set level", Err: err}
	}
	d.delay.Sleep(pulse)
	if err = d.gpio.SetLevel(d.resetPin, !d.resetLevel); err != nil {
		return &GPIOError{Pin: d.resetPin, Op: "set level", Err: err}
	}
	d.delay.Sleep(pulse)
	return
}

// DrawBitmap streams pixels into the half-open window [x0,x1)×[y0,y1). The pixel buffer holds
// (x1-x0)*(y1-y0) pixels of BitsPerPixel bits in controller byte order.
func (d *dbi) DrawBitmap(x0, y0, x1, y1 int, pixels []byte) (err error) {
	if x0 >= x1 || y0 >= y1 {
		panic(d.name + ": start position must be smaller than end position")
	}
	if d.io == nil {
		return ErrClosed
	}

	x0 += d.xGap
	x1 += d.xGap
	y0 += d.yGap
	y1 += d.yGap
	if x0 < 0 || y0 < 0 || x1 > 0x10000 || y1 > 0x10000 {
		return fmt.Errorf("%s: window (%d,%d)-(%d,%d) out of range: %w", d.name, x0, y0, x1, y1, ErrInvalidArgument)
	}

	size := (x1 - x0) * (y1 - y0) * d.bitsPerPixel / 8
	if len(pixels) < size {
		return fmt.Errorf("%s: need %d bytes of pixel data, got %d: %w", d.name, size, len(pixels), ErrInvalidArgument)
	}

	// the controller window is inclusive
	x1--
	y1--
	if err = d.commands([][]byte{
		{cmdCASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}, // Column address
		{cmdRASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}, // Row address
	}); err != nil {
		return
	}

	if err = d.io.TxColor(cmdRAMWR, pixels[:size]); err != nil {
		return &TxError{Cmd: cmdRAMWR, Err: err}
	}
	return
}

// InvertColor toggles display inversion.
func (d *dbi) InvertColor(invert bool) error {
	var command = byte(cmdINVOFF)
	if invert {
		command = byte(cmdINVON)
	}
	return d.command(command)
}

// Mirror sets the column (x) and page (y) address order.
func (d *dbi) Mirror(x, y bool) error {
	madctl := d.madctl
	madctl = setBit(madctl, madctlColumnAddressOrder, x)
	madctl = setBit(madctl, madctlPageAddressOrder, y)
	return d.setMADCTL(madctl)
}

// SwapXY sets the page/column order.
func (d *dbi) SwapXY(swap bool) error {
	return d.setMADCTL(setBit(d.madctl, madctlPageColumnOrder, swap))
}

func (d *dbi) setMADCTL(madctl byte) error {
	if d.io == nil {
		return ErrClosed
	}
	debugf("%s: madctl 0x%02x -> 0x%02x", d.name, d.madctl, madctl)
	// the shadow tracks the controller, a failed write leaves it unchanged
	if err := d.command(cmdMADCTL, madctl); err != nil {
		return err
	}
	d.madctl = madctl
	return nil
}

// SetGap sets the offset added to every window coordinate. Negative gaps are not supported.
func (d *dbi) SetGap(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("%s: negative gap (%d,%d): %w", d.name, x, y, ErrNotSupported)
	}
	d.xGap = x
	d.yGap = y
	return nil
}

// DisplayOnOff turns the display on or off.
func (d *dbi) DisplayOnOff(on bool) error {
	var command = byte(cmdDISPOFF)
	if on {
		command = byte(cmdDISPON)
	}
	return d.command(command)
}

func setBit(v, bit byte, set bool) byte {
	if set {
		return v | bit
	}
	return v &^ bit
}
