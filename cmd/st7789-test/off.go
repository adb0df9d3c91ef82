package main

import (
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
)

func init() { rootCmd.AddCommand(offCmd) }

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "turn the display and backlight off",
	Run: func(cmd *cobra.Command, args []string) {
		run(off)
	},
}

func off() (err error) {
	d, err := openDevice()
	if err != nil {
		return
	}
	defer d.Close()

	if err = d.setBacklight(gpio.Low); err != nil {
		return
	}
	return wrap(d.Show(false))
}
