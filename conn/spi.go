// Package conn opens the buses panels are attached to through the periph.io registries.
//
// The host drivers must have been loaded with host.Init before opening a bus.
package conn

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// DefaultSPISpeed is a safe speed for ST77xx controllers, the datasheet allows 62.5MHz writes.
const DefaultSPISpeed = 40 * physic.MegaHertz

// SPI is an open SPI port with its connection.
type SPI struct {
	spi.Conn
	port spi.PortCloser
}

// OpenSPI opens the named SPI port, use "" to open the first available port, and connects to it
// at the requested speed and mode with 8 bits per word.
func OpenSPI(name string, speed physic.Frequency, mode spi.Mode) (*SPI, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}
	return connectSPI(port, speed, mode)
}

func connectSPI(port spi.PortCloser, speed physic.Frequency, mode spi.Mode) (*SPI, error) {
	if speed <= 0 {
		speed = DefaultSPISpeed
	}
	c, err := port.Connect(speed, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("conn: SPI connect at %s failed: %w", speed, err)
	}
	return &SPI{Conn: c, port: port}, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s", c.port)
}

// Close the port.
func (c *SPI) Close() error {
	return c.port.Close()
}

// ParseSPIMode parses a SPI mode number (0 to 3).
func ParseSPIMode(mode int) (spi.Mode, error) {
	switch mode {
	case 0:
		return spi.Mode0, nil
	case 1:
		return spi.Mode1, nil
	case 2:
		return spi.Mode2, nil
	case 3:
		return spi.Mode3, nil
	default:
		return 0, fmt.Errorf("conn: invalid SPI mode %d", mode)
	}
}
