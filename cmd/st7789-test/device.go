package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-errors/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/panel"
	"github.com/BeatGlow/panel/conn"
	"github.com/BeatGlow/panel/internal/board"
)

// device is a panel opened from a board profile.
type device struct {
	*panel.Screen
	bus       *conn.SPI
	backlight gpio.PinIO
}

func loadProfile() (*board.Profile, error) {
	var (
		profile *board.Profile
		err     error
	)
	switch {
	case profilePath != "" && presetName != "":
		return nil, errors.New("use either --profile or --preset")
	case profilePath != "":
		profile, err = board.Load(profilePath)
	case presetName != "":
		profile, err = board.Preset(presetName)
	default:
		profile = board.Default()
	}
	if err != nil {
		return nil, wrap(err)
	}

	if rotateFlag != "" {
		if profile.Rotation, err = parseRotation(rotateFlag); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func parseRotation(s string) (int, error) {
	switch strings.ToLower(s) {
	case "0", "no":
		return 0, nil
	case "90", "right", "cw":
		return 90, nil
	case "180", "flip":
		return 180, nil
	case "270", "left", "ccw":
		return 270, nil
	default:
		return 0, errors.Errorf("invalid rotation %q specified", s)
	}
}

func pinByName(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("unknown GPIO pin %q", name)
	}
	return p, nil
}

func openDevice() (d *device, err error) {
	profile, err := loadProfile()
	if err != nil {
		return nil, err
	}
	log.Printf("using profile %s: %s %dx%d, rotation %d°", profile.Name, profile.Controller, profile.Width, profile.Height, profile.Rotation)

	if _, err = host.Init(); err != nil {
		return nil, wrap(err)
	}

	dc, err := pinByName(profile.Pins.DC)
	if err != nil {
		return nil, err
	}
	cs, err := pinByName(profile.Pins.CS)
	if err != nil {
		return nil, err
	}
	d = new(device)
	if d.backlight, err = pinByName(profile.Pins.Backlight); err != nil {
		return nil, err
	}

	if d.bus, err = conn.OpenSPI(profile.SPI.Port, profile.SPISpeed(), profile.SPIMode()); err != nil {
		return nil, wrap(err)
	}
	defer func() {
		if err != nil {
			_ = d.bus.Close()
		}
	}()
	log.Printf("using connection: %s", d.bus)

	spiConfig := &panel.SPIConfig{DC: dc}
	if cs != nil {
		spiConfig.CS = cs
	}
	io, err := panel.NewSPIIO(d.bus, spiConfig)
	if err != nil {
		return nil, wrap(err)
	}

	devConfig, err := profile.DevConfig(new(panel.HostGPIO))
	if err != nil {
		return nil, wrap(err)
	}
	var p panel.Panel
	switch profile.Controller {
	case board.ST7735:
		p, err = panel.NewST7735(io, devConfig)
	default:
		p, err = panel.NewST7789(io, devConfig)
	}
	if err != nil {
		return nil, wrap(err)
	}
	if d.Screen, err = panel.NewScreen(p, profile.ScreenConfig()); err != nil {
		_ = p.Close()
		return nil, wrap(err)
	}
	if err = d.Init(); err != nil {
		_ = p.Close()
		return nil, wrap(err)
	}
	log.Printf("using driver: %s", d.Screen)
	return d, nil
}

// on turns the display and its backlight on.
func (d *device) on() error {
	if err := d.Show(true); err != nil {
		return wrap(err)
	}
	return d.setBacklight(gpio.High)
}

func (d *device) setBacklight(level gpio.Level) error {
	if d.backlight == nil {
		return nil
	}
	if err := d.backlight.Out(level); err != nil {
		return errors.New(fmt.Errorf("backlight %s: %w", d.backlight, err))
	}
	return nil
}

func (d *device) Close() error {
	err := d.Screen.Close()
	if busErr := d.bus.Close(); err == nil {
		err = busErr
	}
	return wrap(err)
}
