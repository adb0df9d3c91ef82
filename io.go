package panel

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// IO errors.
var (
	ErrDCPin = errors.New("panel: data/command (DC) GPIO pin is invalid")
)

// SPIConfig describes a 4-wire SPI panel bus.
type SPIConfig struct {
	// DC is the data/command select pin.
	DC gpio.PinOut

	// CS is an optional chip select pin, for when the SPI driver does not handle it.
	CS gpio.PinOut

	// DataLow inverts the DC pin, data is sent with DC low.
	DataLow bool

	// BatchSize is the maximum transfer size, zero selects the bus limit or DefaultBatchSize.
	BatchSize int
}

// DefaultBatchSize matches the default spidev buffer size.
const DefaultBatchSize = 4096

// SPIIO sends commands over a SPI connection with a data/command select pin.
type SPIIO struct {
	bus       spi.Conn
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcValid   bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// NewSPIIO returns an IO on an already connected SPI bus.
func NewSPIIO(c spi.Conn, config *SPIConfig) (*SPIIO, error) {
	if c == nil || config == nil {
		return nil, ErrInvalidArgument
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
		if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
			batchSize = l.MaxTxSize()
		}
	}

	return &SPIIO{
		bus:       c,
		dc:        config.DC,
		cs:        config.CS,
		dataLow:   config.DataLow,
		batchSize: batchSize,
	}, nil
}

func (c *SPIIO) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *SPIIO) updateDC(level gpio.Level) error {
	if !c.dcValid || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
		c.dcValid = true
	}
	return nil
}

func (c *SPIIO) updateCS(level gpio.Level) error {
	if c.cs == nil || c.cs == gpio.INVALID {
		return nil
	}
	return c.cs.Out(level)
}

// TxParam sends a command with optional parameters.
func (c *SPIIO) TxParam(cmd byte, params ...byte) error {
	return c.tx(cmd, params)
}

// TxColor sends a command followed by pixel data.
func (c *SPIIO) TxColor(cmd byte, pixels []byte) error {
	return c.tx(cmd, pixels)
}

func (c *SPIIO) tx(cmd byte, data []byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	defer func() {
		if csErr := c.updateCS(gpio.High); err == nil {
			err = csErr
		}
	}()

	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if err = c.bus.Tx([]byte{cmd}, nil); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
			return
		}
		err = c.writeChunked(data)
	}
	return
}

func (c *SPIIO) writeChunked(data []byte) (err error) {
	if len(data) <= c.batchSize {
		return c.bus.Tx(data, nil)
	}

	debugf("panel: write %d bytes of data in %d chunks", len(data), (len(data)+c.batchSize-1)/c.batchSize)
	for buffer := data; len(buffer) > 0; {
		n := min(len(buffer), c.batchSize)
		if err = c.bus.Tx(buffer[:n], nil); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}

// I2C control bytes.
const (
	i2cControlCommand = 0x00
	i2cControlData    = 0x40
)

// I2CIO sends commands to an I²C panel controller.
type I2CIO struct {
	dev *i2c.Dev
}

// NewI2CIO returns an IO for the controller at addr.
func NewI2CIO(bus i2c.Bus, addr uint16) (*I2CIO, error) {
	if bus == nil {
		return nil, ErrInvalidArgument
	}
	return &I2CIO{dev: &i2c.Dev{Bus: bus, Addr: addr}}, nil
}

func (c *I2CIO) String() string {
	return fmt.Sprintf("I²C %s", c.dev)
}

// TxParam sends a command with optional parameters.
func (c *I2CIO) TxParam(cmd byte, params ...byte) error {
	if err := c.dev.Tx([]byte{i2cControlCommand, cmd}, nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return c.dev.Tx(append([]byte{i2cControlData}, params...), nil)
}

// TxColor sends a command followed by pixel data.
func (c *I2CIO) TxColor(cmd byte, pixels []byte) error {
	return c.TxParam(cmd, pixels...)
}

// Interface checks.
var (
	_ IO = (*SPIIO)(nil)
	_ IO = (*I2CIO)(nil)
)
