package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/timing"
	"github.com/abhisek/calcexam/internal/ui/theme"
)

// Translator looks up a localized label by message ID.
type Translator interface {
	T(msgID string) string
}

// FlagLabel returns the message ID for a timing flag.
func FlagLabel(f timing.Flag) string {
	switch f {
	case timing.FlagTooFast:
		return "FlagTooFast"
	case timing.FlagTooSlow:
		return "FlagTooSlow"
	default:
		return "FlagNormal"
	}
}

// VerdictLabel returns the message ID for a verdict.
func VerdictLabel(v answer.Verdict) string {
	switch v {
	case answer.VerdictCorrect:
		return "VerdictCorrect"
	case answer.VerdictSyntaxError:
		return "VerdictSyntaxError"
	default:
		return "VerdictIncorrect"
	}
}

// TopicLabel returns the message ID for a topic, or the topic itself for
// topics without a catalog entry.
func TopicLabel(t bank.Topic) string {
	switch t {
	case bank.TopicLimits:
		return "TopicLimits"
	case bank.TopicDerivatives:
		return "TopicDerivatives"
	case bank.TopicCriticalPoints:
		return "TopicCriticalPoints"
	default:
		return string(t)
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// TextOptions controls WriteText.
type TextOptions struct {
	// Color enables ANSI styling.
	Color bool
}

type column struct {
	title string
	width int
	right bool
}

// WriteText writes r as an aligned table.
func WriteText(w io.Writer, r *Report, tr Translator, opts TextOptions) error {
	style := func(s lipgloss.Style) lipgloss.Style {
		if opts.Color {
			return s
		}
		return lipgloss.NewStyle()
	}

	cols := []column{
		{tr.T("ColNumber"), 3, true},
		{tr.T("ColTopic"), 16, false},
		{tr.T("ColAnswer"), 24, false},
		{tr.T("ColReference"), 24, false},
		{tr.T("ColResult"), 18, false},
		{tr.T("ColElapsed"), 10, true},
		{tr.T("ColFlag"), 18, false},
	}
	cell := func(c column, text string, s lipgloss.Style) string {
		text = truncate(text, c.width)
		align := lipgloss.Left
		if c.right {
			align = lipgloss.Right
		}
		return s.Width(c.width).Align(align).Render(text)
	}
	line := func(cells []string) string {
		return strings.Join(cells, "  ")
	}

	var b strings.Builder
	b.WriteString(style(theme.Title).Render(tr.T("ReportTitle")))
	if r.BankName != "" {
		b.WriteString(" · " + r.BankName)
	}
	b.WriteString("\n\n")

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = cell(c, c.title, style(theme.TableHeader))
	}
	b.WriteString(line(header) + "\n")

	for _, row := range r.Rows {
		rs := style(rowStyle(row.Highlight))
		result := tr.T(VerdictLabel(row.Verdict))
		cells := []string{
			cell(cols[0], fmt.Sprintf("%d", row.Number), lipgloss.NewStyle()),
			cell(cols[1], tr.T(TopicLabel(row.Topic)), lipgloss.NewStyle()),
			cell(cols[2], row.RawInput, lipgloss.NewStyle()),
			cell(cols[3], row.Reference, style(theme.Hint)),
			cell(cols[4], result, rs),
			cell(cols[5], fmt.Sprintf("%.1f", row.ElapsedSeconds), lipgloss.NewStyle()),
			cell(cols[6], tr.T(FlagLabel(row.TimingFlag)), style(flagStyle(row.TimingFlag))),
		}
		b.WriteString(line(cells) + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", tr.T("Score"), r.Score, r.Total, r.PercentageScore)
	fmt.Fprintf(&b, "%s: %.2f\n", tr.T("TotalTime"), r.TotalElapsedMinutes)
	if n := r.Suspicious(); n > 0 {
		b.WriteString(style(theme.Warning).Render(fmt.Sprintf("%s: %d", tr.T("Suspicious"), n)) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func rowStyle(h Highlight) lipgloss.Style {
	switch h {
	case HighlightNone, HighlightSlow:
		return theme.Correct
	case HighlightSuspicious:
		return theme.Warning
	default:
		return theme.Incorrect
	}
}

func flagStyle(f timing.Flag) lipgloss.Style {
	switch f {
	case timing.FlagTooFast:
		return theme.Warning
	case timing.FlagTooSlow:
		return theme.Hint
	default:
		return theme.Body
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

//go:embed report.html.tmpl
var htmlSource string

// WriteHTML writes r as a standalone HTML page with one table row per
// attempt. Row classes follow Highlight.
func WriteHTML(w io.Writer, r *Report, tr Translator) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"t":       tr.T,
		"flag":    func(f timing.Flag) string { return tr.T(FlagLabel(f)) },
		"verdict": func(v answer.Verdict) string { return tr.T(VerdictLabel(v)) },
		"topic":   func(t bank.Topic) string { return tr.T(TopicLabel(t)) },
	}).Parse(htmlSource)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
