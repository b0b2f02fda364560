package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/config"
	"github.com/abhisek/calcexam/internal/report"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of the configured bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d)\n\n", d.bank.Name(), d.bank.Len())
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tID\tTOPIC\tKIND\tMIN(s)\tREFERENCE")
		for i, q := range d.bank.All() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
				i+1, q.ID, d.loc.T(report.TopicLabel(q.Topic)), q.Kind, q.MinExpectedSeconds, q.ReferenceString())
		}
		return tw.Flush()
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check bank files against the schema and build them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		n := answer.NewNormalizer(cfg.NormalizerOptions())

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			b, err := bank.LoadFile(path, n)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ %s: %q, %d questions\n", path, b.Name(), b.Len())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d bank files are invalid", failed, len(args))
		}
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the built-in bank as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return bank.Encode(cmd.OutOrStdout(), bank.BuiltinFile())
	},
}

var bankSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for bank files",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(bank.Schema())
		return err
	},
}

func init() {
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankSchemaCmd)
}
