package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"homeroom/internal/config"
	"homeroom/internal/engine"
	"homeroom/internal/store"
)

var version string

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "homeroom",
	Short: "Offline-first classroom management CLI",
	Long: `homeroom - classroom management backed by a spreadsheet endpoint.

All reads come from a local snapshot; writes apply locally first and are
pushed to the remote backend in the background. Run 'homeroom sync' to
refresh the snapshot, 'homeroom monitor' for a live view.`,
}

// Execute runs the root command
func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "sync", Title: "Sync & Session:"},
		&cobra.Group{ID: "collections", Title: "Collections:"},
	)
}

// openEngine builds the engine from on-disk config. The caller must Close
// it so queued best-effort mutations drain before exit.
func openEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := engine.New(st, cfg.Gateway())
	e.Init()
	return e, nil
}
