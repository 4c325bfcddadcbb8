package cmd

import (
	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	GroupID: "collections",
	Short:   "Manage class assignments and replies",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks for a class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		tasks := e.Tasks(classID)
		if len(tasks) == 0 {
			output.Subtle("No tasks")
			return nil
		}
		for _, t := range tasks {
			line := t.ID + "  " + t.Title
			if t.DueDate != "" {
				line += "  due " + t.DueDate
			}
			output.Info("%s", line)
		}
		return nil
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Assign a task to a class",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		due, _ := cmd.Flags().GetString("due")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		t := models.Task{
			ClassID: classID,
			Title:   args[0],
			Content: args[1],
			DueDate: due,
		}
		if err := e.AddTask(t); err != nil {
			return err
		}
		output.Success("Task %s assigned", args[0])
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveTask(args[0]); err != nil {
			return err
		}
		output.Info("Task %s removed", args[0])
		return nil
	},
}

var taskRepliesCmd = &cobra.Command{
	Use:   "replies <task-id>",
	Short: "List replies to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		replies := e.TaskReplies(args[0])
		if len(replies) == 0 {
			output.Subtle("No replies yet")
			return nil
		}
		for _, r := range replies {
			output.Info("%s  %s  %s", r.StudentID, r.CreatedAt, r.Content)
		}
		return nil
	},
}

var taskReplyCmd = &cobra.Command{
	Use:   "reply <task-id> <student-id> <content>",
	Short: "Reply to a task on a student's behalf",
	Long: `Record a reply to a task. A student has at most one reply per
task; replying again replaces the earlier content.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		r := models.TaskReply{
			TaskID:    args[0],
			StudentID: args[1],
			Content:   args[2],
		}
		if err := e.ReplyTask(r); err != nil {
			return err
		}
		output.Success("Reply recorded for %s", args[1])
		return nil
	},
}

func init() {
	taskListCmd.Flags().String("class", "", "class ID")
	taskListCmd.MarkFlagRequired("class")

	taskAddCmd.Flags().String("class", "", "class ID")
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.MarkFlagRequired("class")

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskRmCmd, taskRepliesCmd, taskReplyCmd)
	rootCmd.AddCommand(taskCmd)
}
