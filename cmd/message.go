package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var messageCmd = &cobra.Command{
	Use:     "message",
	GroupID: "collections",
	Short:   "Parent-teacher messaging",
}

var messageThreadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "List conversation threads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		threads := e.Threads()
		if len(threads) == 0 {
			output.Subtle("No threads")
			return nil
		}
		for _, t := range threads {
			output.Info("%s  student=%s  last=%s", t.ID, t.ThreadKey, t.LastMessageAt)
		}
		return nil
	},
}

var messageShowCmd = &cobra.Command{
	Use:   "show <student-id>",
	Short: "Show the conversation for a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		thread, err := e.ThreadByStudent(args[0])
		if err != nil {
			return err
		}
		msgs := e.Messages(thread.ID)
		if len(msgs) == 0 {
			output.Subtle("No messages yet")
			return nil
		}
		for _, m := range msgs {
			output.Info("[%s] %s: %s", m.CreatedAt, m.FromRole, m.Content)
		}
		return nil
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <student-id> <content>",
	Short: "Send a message in a student's thread",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleFlag, _ := cmd.Flags().GetString("as")
		var role models.Role
		switch roleFlag {
		case "teacher":
			role = models.RoleTeacher
		case "parent":
			role = models.RoleParent
		default:
			return fmt.Errorf("unknown sender role %q (want teacher or parent)", roleFlag)
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		thread, err := e.ThreadByStudent(args[0])
		if err != nil {
			return err
		}
		if _, err := e.SendMessage(thread.ID, role, args[1]); err != nil {
			return err
		}
		output.Success("Message sent")
		return nil
	},
}

func init() {
	messageSendCmd.Flags().String("as", "teacher", "sender role: teacher or parent")

	messageCmd.AddCommand(messageThreadsCmd, messageShowCmd, messageSendCmd)
	rootCmd.AddCommand(messageCmd)
}
