package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "st7789-test",
	Short:        "exercise a ST7789 TFT panel",
	Long:         "st7789-test drives a ST7789 TFT panel attached to the SPI bus of this host",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debug       bool
	profilePath string
	presetName  string
	rotateFlag  string
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print error stacks")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "board profile (YAML)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "built-in board profile")
	rootCmd.PersistentFlags().StringVarP(&rotateFlag, "rotate", "r", "", "display rotation (0, 90, 180, 270, left, right, flip)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(fn func() error) {
	if err := fn(); err != nil {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debug && ok {
			fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 1)
}
