package exam

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calcexam/internal/bank"
	ex "github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/screen"
	"github.com/abhisek/calcexam/internal/ui/components"
	"github.com/abhisek/calcexam/internal/ui/layout"
)

// FinishedMsg is sent when the student has answered the last question or
// chose to stop early.
type FinishedMsg struct {
	State *ex.SessionState
}

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseQuitConfirm
)

// ExamScreen asks the bank questions one at a time.
type ExamScreen struct {
	engine *ex.Engine
	state  *ex.SessionState
	loc    *i18n.Localizer
	input  components.AnswerInput
	phase  phase

	// Set while showing feedback for the previous question.
	answered bank.QuestionRecord
	outcome  *ex.Outcome

	errMsg string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates an ExamScreen for a started session.
func New(engine *ex.Engine, state *ex.SessionState, loc *i18n.Localizer) *ExamScreen {
	return &ExamScreen{
		engine: engine,
		state:  state,
		loc:    loc,
		input:  components.NewAnswerInput(loc.T("AnswerPlaceholder"), 0),
	}
}

// State returns the session being answered.
func (s *ExamScreen) State() *ex.SessionState { return s.state }

func (s *ExamScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ExamScreen) Title() string {
	if q, ok := s.engine.Current(s.state); ok && s.phase != phaseFeedback {
		return s.loc.T(report.TopicLabel(q.Topic))
	}
	if s.outcome != nil {
		return s.loc.T(report.TopicLabel(s.answered.Topic))
	}
	return s.loc.T("AppTitle")
}

// Status shows the question counter.
func (s *ExamScreen) Status() string {
	total := s.engine.Bank().Len()
	current := min(s.state.CurrentIndex+1, total)
	if s.phase == phaseFeedback {
		current = len(s.state.Log)
	}
	return s.loc.Td("QuestionCounter", map[string]any{"Current": current, "Total": total})
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFeedback:
		return []layout.KeyHint{{Key: s.loc.T("AnyKey"), Description: s.loc.T("KeyContinue")}}
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "y", Description: s.loc.T("KeyConfirm")},
			{Key: "n", Description: s.loc.T("KeyCancel")},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.loc.T("KeySubmit")},
			{Key: "Esc", Description: s.loc.T("KeyQuit")},
		}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		return s.handleKey(kmsg)
	}
	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.finish()
	}

	switch s.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return s, s.finish()
		case "n", "N", "esc":
			s.phase = phaseAnswering
		}
		return s, nil

	case phaseFeedback:
		if s.state.Finished {
			return s, s.finish()
		}
		s.phase = phaseAnswering
		s.outcome = nil
		s.input.Reset()
		return s, s.input.Init()
	}

	switch key {
	case "esc":
		s.phase = phaseQuitConfirm
		return s, nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit grades the typed answer. Blank input is ignored so a stray Enter
// does not cost the student a question.
func (s *ExamScreen) submit() (screen.Screen, tea.Cmd) {
	raw := s.input.Value()
	if raw == "" {
		return s, nil
	}
	q, ok := s.engine.Current(s.state)
	if !ok {
		return s, s.finish()
	}

	out, err := s.engine.Submit(s.state, raw)
	if err != nil {
		if errors.Is(err, ex.ErrSessionFinished) {
			return s, s.finish()
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.answered = q
	s.outcome = out
	s.phase = phaseFeedback
	return s, nil
}

func (s *ExamScreen) finish() tea.Cmd {
	state := s.state
	return func() tea.Msg { return FinishedMsg{State: state} }
}
