package cmd

import (
	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var docCmd = &cobra.Command{
	Use:     "doc",
	GroupID: "collections",
	Short:   "Manage shared class documents",
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents for a class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		docs := e.Documents(classID)
		if len(docs) == 0 {
			output.Subtle("No documents")
			return nil
		}
		for _, d := range docs {
			output.Info("%s  %-30s %s", d.ID, d.Title, d.URL)
		}
		return nil
	},
}

var docAddCmd = &cobra.Command{
	Use:   "add <title> <url>",
	Short: "Share a document link with a class",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		d := models.Document{
			ClassID: classID,
			Title:   args[0],
			URL:     args[1],
		}
		if err := e.AddDocument(d); err != nil {
			return err
		}
		output.Success("Document %s shared", args[0])
		return nil
	},
}

var docRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveDocument(args[0]); err != nil {
			return err
		}
		output.Info("Document %s removed", args[0])
		return nil
	},
}

func init() {
	docListCmd.Flags().String("class", "", "class ID")
	docListCmd.MarkFlagRequired("class")

	docAddCmd.Flags().String("class", "", "class ID")
	docAddCmd.MarkFlagRequired("class")

	docCmd.AddCommand(docListCmd, docAddCmd, docRmCmd)
	rootCmd.AddCommand(docCmd)
}
