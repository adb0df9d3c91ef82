package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/panel/internal/board"
)

func init() {
	profileCmd.Flags().BoolVar(&listPresets, "list", false, "list the built-in profiles")
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "print the effective board profile",
	Run: func(cmd *cobra.Command, args []string) {
		run(printProfile)
	},
}

var listPresets bool

func printProfile() error {
	if listPresets {
		for _, name := range board.Presets() {
			fmt.Println(name)
		}
		return nil
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}
	if err = profile.Validate(); err != nil {
		return wrap(err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return wrap(enc.Encode(profile))
}
