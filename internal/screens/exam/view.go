package exam

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/ui/components"
	"github.com/abhisek/calcexam/internal/ui/layout"
	"github.com/abhisek/calcexam/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}

	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if !layout.IsCompactHeight(height) {
		bar := components.NewProgressBar(len(s.state.Log), s.engine.Bank().Len(), min(width-8, 60))
		b.WriteString(center.Render(bar.View()))
		b.WriteString("\n\n")
	}

	switch s.phase {
	case phaseFeedback:
		b.WriteString(s.renderFeedback(width))
	case phaseQuitConfirm:
		b.WriteString("\n")
		b.WriteString(center.Inherit(theme.Warning).Render(s.loc.T("QuitConfirm")))
	default:
		b.WriteString(s.renderQuestion(width))
	}
	return b.String()
}

func (s *ExamScreen) renderQuestion(width int) string {
	q, ok := s.engine.Current(s.state)
	if !ok {
		return ""
	}
	var b strings.Builder
	cardWidth := min(width-4, 76)

	prompt := theme.Prompt.Width(cardWidth - 6).Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cardWidth).Render(prompt)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	return b.String()
}

func (s *ExamScreen) renderFeedback(width int) string {
	out := s.outcome
	if out == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	b.WriteString(center.Inherit(theme.Prompt).Render(s.answered.Prompt))
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.Body).Render("› " + out.Attempt.RawInput))
	b.WriteString("\n\n")

	label := s.loc.T(report.VerdictLabel(out.Attempt.Verdict))
	if out.Attempt.Verdict == answer.VerdictCorrect {
		b.WriteString(center.Inherit(theme.Correct).Render("✓ " + label))
	} else {
		b.WriteString(center.Inherit(theme.Incorrect).Render("✗ " + label))
	}
	b.WriteString("\n")

	if msg := report.Feedback(s.loc, out.Err); msg != "" {
		b.WriteString("\n")
		b.WriteString(center.Inherit(theme.Warning).Render(msg))
		b.WriteString("\n")
	}
	if out.Hint != "" {
		b.WriteString("\n")
		b.WriteString(center.Inherit(theme.Hint).Render(s.loc.T("HintLabel") + ": " + out.Hint))
		b.WriteString("\n")
	}
	return b.String()
}
