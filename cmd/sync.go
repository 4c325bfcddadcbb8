package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homeroom/internal/engine"
	"homeroom/internal/output"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	GroupID: "sync",
	Short:   "Refresh the local snapshot from the remote backend",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		e.Refresh(cmd.Context())

		state := e.SyncState()
		switch state.Status {
		case engine.StatusIdle:
			st := e.Stats()
			output.Success("Synced %d students, %d classes, %d questions",
				st.Students, st.Classes, st.Questions)
			return nil
		case engine.StatusNotConfigured:
			return fmt.Errorf("no endpoint configured: run 'homeroom init' first")
		default:
			return fmt.Errorf("sync failed; previous snapshot kept (status %s)", state.Status)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:     "status",
	GroupID: "sync",
	Short:   "Show sync status and snapshot counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		state := e.SyncState()
		st := e.Stats()

		if asJSON {
			return output.JSON(map[string]any{
				"status":   state.Status,
				"lastSync": state.LastSync,
				"counts":   st,
			})
		}

		output.Info("status:    %s", output.StatusBadge(state.Status))
		output.Info("last sync: %s", output.FormatLastSync(state.LastSync))
		output.Info("")
		output.Info("classes %d · students %d · parents %d · attendance %d · behaviors %d",
			st.Classes, st.Students, st.Parents, st.Attendance, st.Behaviors)
		output.Info("announcements %d · documents %d · tasks %d · threads %d · messages %d · questions %d",
			st.Announcements, st.Documents, st.Tasks, st.Threads, st.Messages, st.Questions)
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(syncCmd, statusCmd)
}
