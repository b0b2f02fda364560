package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/app"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the exam line by line on stdin/stdout (no full-screen UI)",
	Long: `Ask every question in order, reading one answer per line from stdin.
Useful for scripted runs and terminals without full-screen support. The
audit report is printed when the input ends or the last question is
answered.`,
	RunE: runLines,
}

func init() {
	runCmd.Flags().String("save", "", "Write the session as JSON to this file when done")
	runCmd.Flags().String("format", "text", "Report format: text, json or html")
}

// runApp launches the full-screen exam, or the line mode when stdin is
// not a terminal.
func runApp(cmd *cobra.Command) error {
	if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(f.Fd()) {
		return runLines(cmd, nil)
	}

	d, err := loadDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.close()

	state, err := d.engine.Start()
	if err != nil {
		return err
	}
	state, err = app.Run(d.engine, state, d.loc, d.logger)
	if err != nil {
		return err
	}
	return saveIfRequested(cmd, state)
}

func runLines(cmd *cobra.Command, args []string) error {
	d, err := loadDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.close()

	format, _ := cmd.Flags().GetString("format")
	state, err := d.engine.Start()
	if err != nil {
		return err
	}
	if err := playLines(cmd.InOrStdin(), cmd.OutOrStdout(), d, state); err != nil {
		return err
	}
	if err := saveIfRequested(cmd, state); err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report.Summarize(d.bank, state), d, format)
}

// playLines asks questions until the session finishes or in is exhausted.
// Blank lines are skipped without counting as an attempt.
func playLines(in io.Reader, out io.Writer, d *deps, state *exam.SessionState) error {
	scanner := bufio.NewScanner(in)
	total := d.bank.Len()

	for !state.Finished {
		q, ok := d.engine.Current(state)
		if !ok {
			break
		}
		counter := d.loc.Td("QuestionCounter", map[string]any{"Current": state.CurrentIndex + 1, "Total": total})
		fmt.Fprintf(out, "── %s · %s ──\n", counter, d.loc.T(report.TopicLabel(q.Topic)))
		fmt.Fprintln(out, q.Prompt)

		var raw string
		for raw == "" {
			fmt.Fprint(out, "\n› ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			raw = strings.TrimSpace(scanner.Text())
		}

		outcome, err := d.engine.Submit(state, raw)
		if err != nil {
			return err
		}
		label := d.loc.T(report.VerdictLabel(outcome.Attempt.Verdict))
		if outcome.Attempt.IsCorrect {
			fmt.Fprintf(out, "✓ %s\n", label)
		} else {
			fmt.Fprintf(out, "✗ %s\n", label)
		}
		if msg := report.Feedback(d.loc, outcome.Err); msg != "" {
			fmt.Fprintln(out, msg)
		}
		if outcome.Hint != "" {
			fmt.Fprintf(out, "%s: %s\n", d.loc.T("HintLabel"), outcome.Hint)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func saveIfRequested(cmd *cobra.Command, state *exam.SessionState) error {
	path, _ := cmd.Flags().GetString("save")
	if path == "" {
		return nil
	}
	return saveSession(path, state)
}

// saveSession writes state as indented JSON.
func saveSession(path string, state *exam.SessionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// loadSession reads a session written by saveSession.
func loadSession(path string) (*exam.SessionState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var state exam.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	return &state, nil
}

func writeReport(w io.Writer, r *report.Report, d *deps, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return report.WriteText(w, r, d.loc, report.TextOptions{Color: isTerminal(w)})
	case "json":
		return report.WriteJSON(w, r)
	case "html":
		return report.WriteHTML(w, r, d.loc)
	default:
		d.logger.Warn("unknown report format", zap.String("format", format))
		return fmt.Errorf("unknown report format %q (want text, json or html)", format)
	}
}

// isTerminal reports whether w is a terminal that can show colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
