package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var questionCmd = &cobra.Command{
	Use:     "question",
	GroupID: "collections",
	Short:   "Manage the quiz question bank",
}

var questionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quiz questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		questions := e.Questions()
		if len(questions) == 0 {
			output.Subtle("Question bank is empty")
			return nil
		}
		for _, q := range questions {
			output.Info("%s  %-15s %dpt  %s", q.ID, q.Type, q.Points, q.Content)
		}
		return nil
	},
}

var questionAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a question to the bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		options, _ := cmd.Flags().GetStringSlice("option")
		answer, _ := cmd.Flags().GetString("answer")
		points, _ := cmd.Flags().GetInt("points")

		var qt models.QuestionType
		switch kind {
		case "multiple_choice":
			qt = models.QuestionMultipleChoice
		case "short_answer":
			qt = models.QuestionShortAnswer
		case "sorting":
			qt = models.QuestionSorting
		case "matching":
			qt = models.QuestionMatching
		default:
			return fmt.Errorf("unknown question type %q", kind)
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		q := models.Question{
			Type:    qt,
			Content: args[0],
			Options: options,
			Answer:  answer,
			Points:  models.FlexInt(points),
		}
		if err := e.AddQuestion(q); err != nil {
			return err
		}
		output.Success("Question added")
		return nil
	},
}

var questionRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveQuestion(args[0]); err != nil {
			return err
		}
		output.Info("Question %s removed", args[0])
		return nil
	},
}

func init() {
	questionAddCmd.Flags().String("type", "short_answer", "question type: multiple_choice, short_answer, sorting, matching")
	questionAddCmd.Flags().StringSlice("option", nil, "answer option (repeatable)")
	questionAddCmd.Flags().String("answer", "", "expected answer")
	questionAddCmd.Flags().Int("points", 1, "points awarded")

	questionCmd.AddCommand(questionListCmd, questionAddCmd, questionRmCmd)
	rootCmd.AddCommand(questionCmd)
}
