package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/calcexam/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report SESSION.json",
	Short: "Render the audit report of a saved session",
	Long: `Render a session saved with --save as a text table, JSON or an HTML
page. The bank must be the one the session was taken with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		state, err := loadSession(args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return writeReport(cmd.OutOrStdout(), report.Summarize(d.bank, state), d, format)
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "text", "Report format: text, json or html")
}
