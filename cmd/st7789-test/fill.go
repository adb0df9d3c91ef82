package main

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() { rootCmd.AddCommand(fillCmd) }

var fillCmd = &cobra.Command{
	Use:   "fill <rrggbb>",
	Short: "fill the display with a single color",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error { return fill(args[0]) })
	},
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, errors.Errorf("invalid color %q, expected rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Errorf("invalid color %q: %v", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func fill(s string) (err error) {
	c, err := parseColor(s)
	if err != nil {
		return
	}

	d, err := openDevice()
	if err != nil {
		return
	}
	defer d.Close()

	d.Fill(c)
	if err = d.Refresh(); err != nil {
		return wrap(err)
	}
	return d.on()
}
