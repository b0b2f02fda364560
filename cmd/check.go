package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/symbolic"
)

var checkCmd = &cobra.Command{
	Use:   "check EXPR",
	Short: "Check whether an answer is equivalent to a reference",
	Long: `Normalize EXPR and a reference and report whether they are
mathematically equivalent, the way exam answers are graded.

  calcexam check "2x cos(x^2)" --ref "2*x*cos(x**2)"
  calcexam check "{1, -1}" --ref "-1; 1" --kind set
  calcexam check "sin(x) + x cos(x)" --derivative-of "x sin(x)"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ref", "", "Reference answer")
	checkCmd.Flags().String("derivative-of", "", "Use the derivative of this function as the reference")
	checkCmd.Flags().String("kind", string(answer.KindValue), "Answer kind: value, derivative or set")
	checkCmd.MarkFlagsOneRequired("ref", "derivative-of")
	checkCmd.MarkFlagsMutuallyExclusive("ref", "derivative-of")
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, err := loadDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.close()

	kindVal, _ := cmd.Flags().GetString("kind")
	ref, _ := cmd.Flags().GetString("ref")
	of, _ := cmd.Flags().GetString("derivative-of")

	kind, err := answer.ParseKind(kindVal)
	if err != nil {
		return err
	}

	target := answer.Target{Kind: kind}
	if of != "" {
		f, err := d.normalizer.Normalize(of)
		if err != nil {
			return fmt.Errorf("derivative-of: %w", err)
		}
		target.Kind = answer.KindDerivative
		target.Reference = symbolic.Diff(f, d.normalizer.Variable())
	} else if kind == answer.KindSet {
		for _, part := range answer.SplitSet(ref) {
			e, err := d.normalizer.Normalize(part)
			if err != nil {
				return fmt.Errorf("ref: %w", err)
			}
			target.Set = append(target.Set, e)
		}
	} else {
		if target.Reference, err = d.normalizer.Normalize(ref); err != nil {
			return fmt.Errorf("ref: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	res := answer.NewChecker(d.normalizer, d.logger).Check(args[0], target)
	for _, e := range res.Parsed {
		fmt.Fprintf(out, "answer:    %s\n", e)
	}
	if target.Reference != nil {
		fmt.Fprintf(out, "reference: %s\n", target.Reference)
	}
	for _, e := range target.Set {
		fmt.Fprintf(out, "reference: %s\n", e)
	}

	switch {
	case res.Verdict == answer.VerdictSyntaxError:
		fmt.Fprintln(out, report.Feedback(d.loc, res.Err))
	case res.Correct():
		fmt.Fprintln(out, d.loc.T("CheckEquivalent"))
	default:
		fmt.Fprintln(out, d.loc.T("CheckNotEquivalent"))
		if res.Err != nil {
			fmt.Fprintln(out, res.Err)
		}
	}
	return nil
}
