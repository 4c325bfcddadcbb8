package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"homeroom/internal/config"
	"homeroom/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: "sync",
	Short:   "Configure the remote endpoint interactively",
	RunE:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mode := string(cfg.Mode)
	if mode == "" {
		mode = string(config.ModeRelay)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Connection mode").
				Description("relay: talk through a relay that holds the secret\ndirect: talk to the script endpoint with a local key (development)").
				Options(
					huh.NewOption("relay", string(config.ModeRelay)),
					huh.NewOption("direct", string(config.ModeDirect)),
				).
				Value(&mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Relay URL").
				Placeholder("https://example.com/api").
				Value(&cfg.RelayURL),
		).WithHideFunc(func() bool { return mode != string(config.ModeRelay) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Script endpoint URL").
				Placeholder("https://script.example.com/exec").
				Value(&cfg.ScriptURL),
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIKey),
		).WithHideFunc(func() bool { return mode != string(config.ModeDirect) }),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("init form: %w", err)
	}

	cfg.Mode = config.Mode(mode)
	if err := config.Save(cfg); err != nil {
		return err
	}

	output.Success("Configuration saved")
	output.Subtle("Run 'homeroom sync' to fetch data, 'homeroom ping' to test the connection.")
	return nil
}
