package summary

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/screen"
	"github.com/abhisek/calcexam/internal/timing"
	"github.com/abhisek/calcexam/internal/ui/layout"
	"github.com/abhisek/calcexam/internal/ui/theme"
)

// RestartMsg asks the app to start the exam over.
type RestartMsg struct{}

// SummaryScreen shows the audit report of a session.
type SummaryScreen struct {
	report   *report.Report
	loc      *i18n.Localizer
	viewport viewport.Model
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for r.
func New(r *report.Report, loc *i18n.Localizer) *SummaryScreen {
	var b strings.Builder
	if err := report.WriteText(&b, r, loc, report.TextOptions{Color: true}); err != nil {
		b.WriteString(err.Error())
	}
	vp := viewport.New()
	vp.SetContent(b.String())
	return &SummaryScreen{report: r, loc: loc, viewport: vp}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.loc.T("ExamFinished")
}

// Status shows the score.
func (s *SummaryScreen) Status() string {
	return fmt.Sprintf("%s %d/%d", s.loc.T("Score"), s.report.Score, s.report.Total)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: s.loc.T("KeyScroll")},
		{Key: "r", Description: s.loc.T("KeyRestart")},
		{Key: "q", Description: s.loc.T("KeyQuit")},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "r", "R":
			return s, func() tea.Msg { return RestartMsg{} }
		case "q", "esc":
			return s, tea.Quit
		}
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString(center.Inherit(theme.Title).Render(s.loc.T("ExamFinished")))
	b.WriteString("\n")
	b.WriteString(center.Inherit(theme.Subtitle).Render(s.loc.Tp("QuestionsAnswered", s.report.Answered)))
	b.WriteString("\n")
	if n := flagged(s.report); n > 0 {
		b.WriteString(center.Inherit(theme.Warning).Render(s.loc.Tp("FlaggedAttempts", n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s.viewport.SetWidth(max(width-2, 0))
	s.viewport.SetHeight(max(height-lipgloss.Height(b.String())-1, 1))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(1).Render(s.viewport.View()))
	return b.String()
}

func flagged(r *report.Report) int {
	n := 0
	for f, c := range r.Flags {
		if f != timing.FlagNormal {
			n += c
		}
	}
	return n
}
