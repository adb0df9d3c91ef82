// Package panel contains drivers for TFT LCD panel controllers.
//
// A driver translates the generic [Panel] operations into the command and parameter sequences a
// controller expects on its MIPI-DBI style command bus. The bus, the reset GPIO and the delays are
// provided by the caller through the [IO], [GPIO] and [Delay] interfaces.
package panel

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

var debug bool

func init() {
	debug = os.Getenv("PANEL_DEBUG") != ""
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf(format, args...)
	}
}

// Errors
var (
	ErrInvalidArgument = errors.New("panel: invalid argument")
	ErrNotSupported    = errors.New("panel: not supported")
	ErrClosed          = errors.New("panel: closed")
)

// NoPin marks a pin as not connected.
const NoPin = -1

// TxError is returned when the command bus fails to carry a command.
type TxError struct {
	Cmd byte
	Err error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("panel: io tx %s failed: %v", commandName(e.Cmd), e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// GPIOError is returned when driving or configuring a GPIO pin fails.
type GPIOError struct {
	Pin int
	Op  string
	Err error
}

func (e *GPIOError) Error() string {
	return fmt.Sprintf("panel: gpio %d %s failed: %v", e.Pin, e.Op, e.Err)
}

func (e *GPIOError) Unwrap() error {
	return e.Err
}

// IO is the command bus a panel is attached to.
type IO interface {
	// TxParam sends a command byte followed by its parameter bytes.
	TxParam(cmd byte, params ...byte) error

	// TxColor sends a command byte followed by a pixel stream.
	TxColor(cmd byte, pixels []byte) error
}

// GPIO controls the pins owned by a panel.
type GPIO interface {
	// ConfigureOutput reserves the pin and configures it as an output driven at the given level.
	ConfigureOutput(pin int, high bool) error

	// SetLevel drives the pin high or low.
	SetLevel(pin int, high bool) error

	// Release returns the pin to its reset state.
	Release(pin int) error
}

// Delay blocks the calling goroutine.
type Delay interface {
	Sleep(time.Duration)
}

// DelayFunc adapts a function to the Delay interface.
type DelayFunc func(time.Duration)

func (f DelayFunc) Sleep(d time.Duration) {
	f(d)
}

// SystemDelay sleeps using [time.Sleep].
var SystemDelay Delay = DelayFunc(time.Sleep)

// Panel is the set of operations every panel driver implements.
type Panel interface {
	// Close releases the resources held by the panel. The controller is not commanded.
	Close() error

	// Reset performs a hardware reset if a reset pin is available, a software reset otherwise.
	Reset() error

	// Init configures the controller. It does not turn the display on.
	Init() error

	// DrawBitmap streams pixels into the window [x0,x1)×[y0,y1).
	DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error

	// InvertColor toggles color inversion.
	InvertColor(invert bool) error

	// Mirror sets the column (x) and row (y) address order.
	Mirror(x, y bool) error

	// SwapXY exchanges rows and columns.
	SwapXY(swap bool) error

	// SetGap sets the offset between logical (0,0) and the controller frame memory origin.
	SetGap(x, y int) error

	// DisplayOnOff turns the display on or off.
	DisplayOnOff(on bool) error
}

// RGBOrder is the color element order of the panel.
type RGBOrder uint8

// Supported color orders.
const (
	RGB RGBOrder = iota
	BGR
)

func (o RGBOrder) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	default:
		return fmt.Sprintf("RGBOrder(%d)", uint8(o))
	}
}

// DevConfig is the panel device configuration.
type DevConfig struct {
	// ResetPin is the hardware reset pin, use NoPin to reset in software.
	ResetPin int

	// ResetActiveHigh sets the level that holds the controller in reset. The default is low,
	// matching the active-low RESX line of most controllers.
	ResetActiveHigh bool

	// RGBOrder of the panel color elements.
	RGBOrder RGBOrder

	// BitsPerPixel is the controller pixel format, 16 (RGB565) or 18 (RGB666).
	BitsPerPixel int

	// Gamma program sent by Init, nil selects GammaDefault.
	Gamma Gamma

	// GPIO controls the reset pin, required if ResetPin is set.
	GPIO GPIO

	// Delay is used for controller timings, nil selects SystemDelay.
	Delay Delay
}
