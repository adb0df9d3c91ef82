package panel

import (
	"tinygo.org/x/drivers"
)

// Pin is an output pin as found on TinyGo targets (machine.Pin).
type Pin interface {
	High()
	Low()
}

// TinyGoIO sends commands over a TinyGo SPI bus with a data/command select pin.
// The SPI bus must have already been configured.
type TinyGoIO struct {
	bus drivers.SPI
	dc  Pin
	cs  Pin
}

// NewTinyGoIO returns an IO on bus, cs may be nil if the chip select is hardwired.
func NewTinyGoIO(bus drivers.SPI, dc, cs Pin) (*TinyGoIO, error) {
	if bus == nil || dc == nil {
		return nil, ErrInvalidArgument
	}
	return &TinyGoIO{bus: bus, dc: dc, cs: cs}, nil
}

// TxParam sends a command with optional parameters.
func (c *TinyGoIO) TxParam(cmd byte, params ...byte) error {
	return c.tx(cmd, params)
}

// TxColor sends a command followed by pixel data.
func (c *TinyGoIO) TxColor(cmd byte, pixels []byte) error {
	return c.tx(cmd, pixels)
}

func (c *TinyGoIO) tx(cmd byte, data []byte) (err error) {
	if c.cs != nil {
		c.cs.Low()
		defer c.cs.High()
	}

	c.dc.Low()
	if err = c.bus.Tx([]byte{cmd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		c.dc.High()
		err = c.bus.Tx(data, nil)
	}
	return
}

var _ IO = (*TinyGoIO)(nil)
