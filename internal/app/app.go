package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/router"
	"github.com/abhisek/calcexam/internal/screen"
	examscreen "github.com/abhisek/calcexam/internal/screens/exam"
	"github.com/abhisek/calcexam/internal/screens/summary"
	"github.com/abhisek/calcexam/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	engine *exam.Engine
	state  *exam.SessionState
	loc    *i18n.Localizer
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel showing the first question of state.
func newAppModel(engine *exam.Engine, state *exam.SessionState, loc *i18n.Localizer, logger *zap.Logger) AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		router: router.New(examscreen.New(engine, state, loc)),
		engine: engine,
		state:  state,
		loc:    loc,
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case examscreen.FinishedMsg:
		m.state = msg.State
		rep := report.Summarize(m.engine.Bank(), msg.State)
		m.logger.Info("exam finished",
			zap.String("session", msg.State.ID),
			zap.Int("score", rep.Score),
			zap.Int("answered", rep.Answered),
			zap.Int("suspicious", rep.Suspicious()))
		return m, m.router.Replace(summary.New(rep, m.loc))

	case summary.RestartMsg:
		if err := m.engine.Restart(m.state); err != nil {
			m.logger.Error("restart", zap.Error(err))
			return m, tea.Quit
		}
		return m, m.router.Replace(examscreen.New(m.engine, m.state, m.loc))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders the header, active screen and footer for the current
// terminal size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: m.loc.T("KeyQuit")})

	header := layout.RenderHeader(m.loc.T("AppTitle"), title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run plays state in the terminal until the student quits and returns the
// session as it was left.
func Run(engine *exam.Engine, state *exam.SessionState, loc *i18n.Localizer, logger *zap.Logger) (*exam.SessionState, error) {
	p := tea.NewProgram(newAppModel(engine, state, loc, logger))
	final, err := p.Run()
	if err != nil {
		return state, fmt.Errorf("run terminal ui: %w", err)
	}
	if m, ok := final.(AppModel); ok {
		return m.state, nil
	}
	return state, nil
}
