package conn

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is an open I²C bus.
type I2C struct {
	i2c.BusCloser
}

// OpenI2C opens the named I²C bus, use "" to open the first available bus.
func OpenI2C(name string) (*I2C, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	return &I2C{BusCloser: bus}, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s", c.BusCloser)
}
