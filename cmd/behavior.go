package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var behaviorCmd = &cobra.Command{
	Use:     "behavior",
	GroupID: "collections",
	Short:   "Log praise and warnings",
}

var behaviorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List behavior entries for a class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		entries := e.Behaviors(classID, from, to)
		if len(entries) == 0 {
			output.Subtle("No behavior entries")
			return nil
		}
		for _, b := range entries {
			output.Info("%s  %s  %-6s %+d  %s (%s)", b.ID, b.Date, b.Type, b.Points, b.Title, b.StudentID)
		}
		return nil
	},
}

var behaviorAddCmd = &cobra.Command{
	Use:   "add <student-id> <title>",
	Short: "Log a praise or warning entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		kind, _ := cmd.Flags().GetString("type")
		points, _ := cmd.Flags().GetInt("points")
		note, _ := cmd.Flags().GetString("note")

		var bt models.BehaviorType
		switch kind {
		case "praise":
			bt = models.BehaviorPraise
		case "warn":
			bt = models.BehaviorWarn
		default:
			return fmt.Errorf("unknown behavior type %q (want praise or warn)", kind)
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		b := models.Behavior{
			ClassID:   classID,
			StudentID: args[0],
			Date:      time.Now().UTC().Format("2006-01-02"),
			Type:      bt,
			Title:     args[1],
			Points:    models.FlexInt(points),
			Note:      note,
		}
		if err := e.AddBehavior(b); err != nil {
			return err
		}
		output.Success("%s logged for %s", bt, args[0])
		return nil
	},
}

var behaviorRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a behavior entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveBehavior(args[0]); err != nil {
			return err
		}
		output.Info("Behavior entry %s removed", args[0])
		return nil
	},
}

func init() {
	behaviorListCmd.Flags().String("class", "", "class ID")
	behaviorListCmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	behaviorListCmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	behaviorListCmd.MarkFlagRequired("class")

	behaviorAddCmd.Flags().String("class", "", "class ID")
	behaviorAddCmd.Flags().String("type", "praise", "entry type: praise or warn")
	behaviorAddCmd.Flags().Int("points", 0, "points attached to the entry")
	behaviorAddCmd.Flags().String("note", "", "optional note")
	behaviorAddCmd.MarkFlagRequired("class")

	behaviorCmd.AddCommand(behaviorListCmd, behaviorAddCmd, behaviorRmCmd)
	rootCmd.AddCommand(behaviorCmd)
}
