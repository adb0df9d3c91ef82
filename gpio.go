package panel

import (
	"errors"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// GPIO errors.
var (
	ErrUnknownPin  = errors.New("panel: unknown GPIO pin")
	ErrPinReserved = errors.New("panel: GPIO pin already reserved")
	ErrPinNotOwned = errors.New("panel: GPIO pin not reserved")
)

// HostGPIO controls pins through the periph.io GPIO registry. The host drivers must have been
// loaded with host.Init.
type HostGPIO struct {
	// Lookup resolves a pin by name or number, nil selects gpioreg.ByName.
	Lookup func(name string) gpio.PinIO

	mu   sync.Mutex
	pins map[int]gpio.PinIO
}

func (h *HostGPIO) lookup(n int) gpio.PinIO {
	lookup := h.Lookup
	if lookup == nil {
		lookup = gpioreg.ByName
	}
	return lookup(strconv.Itoa(n))
}

func (h *HostGPIO) pin(n int) (gpio.PinIO, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pins[n]
	if !ok {
		return nil, ErrPinNotOwned
	}
	return p, nil
}

// ConfigureOutput reserves pin n and drives it at the given level.
func (h *HostGPIO) ConfigureOutput(n int, high bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.pins[n]; ok {
		return ErrPinReserved
	}
	p := h.lookup(n)
	if p == nil || p == gpio.INVALID {
		return ErrUnknownPin
	}
	if err := p.Out(gpio.Level(high)); err != nil {
		return err
	}
	if h.pins == nil {
		h.pins = make(map[int]gpio.PinIO)
	}
	h.pins[n] = p
	debugf("panel: gpio %s configured as output (%s)", p, gpio.Level(high))
	return nil
}

// SetLevel drives a reserved pin.
func (h *HostGPIO) SetLevel(n int, high bool) error {
	p, err := h.pin(n)
	if err != nil {
		return err
	}
	return p.Out(gpio.Level(high))
}

// Release returns a reserved pin to a floating input.
func (h *HostGPIO) Release(n int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.pins[n]
	if !ok {
		return ErrPinNotOwned
	}
	delete(h.pins, n)
	return p.In(gpio.PullNoChange, gpio.NoEdge)
}

var _ GPIO = (*HostGPIO)(nil)
