package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/calcexam/internal/bank"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "calcexam", version)
		fmt.Fprintf(cmd.OutOrStdout(), "bank format %s\n", bank.FormatMajor)
	},
}
