package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var announceCmd = &cobra.Command{
	Use:     "announce",
	GroupID: "collections",
	Short:   "Manage class announcements",
}

var announceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements, pinned first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		entries := e.Announcements(classID)
		if len(entries) == 0 {
			output.Subtle("No announcements")
			return nil
		}
		for _, a := range entries {
			pin := "  "
			if a.Pinned {
				pin = "📌"
			}
			output.Info("%s %s  %s  %s", pin, a.ID, a.CreatedAt, a.Title)
		}
		return nil
	},
}

var announceShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render one announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		for _, a := range e.Announcements(classID) {
			if a.ID != args[0] {
				continue
			}
			md, err := output.Markdown("# " + a.Title + "\n\n" + a.Content)
			if err != nil {
				return err
			}
			fmt.Print(md)
			return nil
		}
		return fmt.Errorf("no announcement %s", args[0])
	},
}

var announceAddCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Post an announcement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		pinned, _ := cmd.Flags().GetBool("pin")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		a := models.Announcement{
			ClassID: classID,
			Title:   args[0],
			Content: args[1],
			Pinned:  pinned,
		}
		if err := e.AddAnnouncement(a); err != nil {
			return err
		}
		output.Success("Announcement posted: %s", args[0])
		return nil
	},
}

var announceRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveAnnouncement(args[0]); err != nil {
			return err
		}
		output.Info("Announcement %s removed", args[0])
		return nil
	},
}

func init() {
	announceListCmd.Flags().String("class", "", "class ID")
	announceListCmd.MarkFlagRequired("class")

	announceShowCmd.Flags().String("class", "", "class ID")
	announceShowCmd.MarkFlagRequired("class")

	announceAddCmd.Flags().String("class", "", "class ID")
	announceAddCmd.Flags().Bool("pin", false, "pin to the top of the list")
	announceAddCmd.MarkFlagRequired("class")

	announceCmd.AddCommand(announceListCmd, announceShowCmd, announceAddCmd, announceRmCmd)
	rootCmd.AddCommand(announceCmd)
}
