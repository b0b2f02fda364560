package exam

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	ex "github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
)

func newScreen(t *testing.T) *ExamScreen {
	t.Helper()
	n := answer.NewNormalizer(answer.Options{})
	defs := []bank.Definition{
		{ID: "limit", Topic: "limits", Prompt: "lim x→2 (3x-9)", Kind: "VALUE", ReferenceAnswer: "-3", MinExpectedSeconds: 10, Hint: "substitute x = 2"},
		{ID: "power", Topic: "derivatives", Prompt: "y = x^2", Kind: "DERIVATIVE", SourceFunction: "x^2", MinExpectedSeconds: 10},
	}
	b, err := bank.Build("test", defs, n)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	engine := ex.NewEngine(b, answer.NewChecker(n, nil))
	state, err := engine.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return New(engine, state, i18n.Must("en"))
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeAnswer(s *ExamScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestExamScreen_WrongAnswerShowsHint(t *testing.T) {
	s := newScreen(t)
	typeAnswer(s, "3")
	s.Update(specialKey(tea.KeyEnter))

	if s.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", s.phase)
	}
	if s.state.Score != 0 || len(s.state.Log) != 1 {
		t.Errorf("score/log = %d/%d, want 0/1", s.state.Score, len(s.state.Log))
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "incorrect") || !strings.Contains(view, "substitute x = 2") {
		t.Errorf("feedback view missing verdict or hint:\n%s", view)
	}
}

func TestExamScreen_CorrectAnswerAdvances(t *testing.T) {
	s := newScreen(t)
	typeAnswer(s, "-3")
	s.Update(specialKey(tea.KeyEnter))
	if s.state.Score != 1 {
		t.Errorf("Score = %d, want 1", s.state.Score)
	}
	if strings.Contains(s.View(80, 30), "Hint") {
		t.Error("hint shown after a correct answer")
	}

	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected the input to refocus after feedback")
	}
	if s.phase != phaseAnswering || s.input.Value() != "" {
		t.Errorf("phase = %d input = %q, want a fresh answering phase", s.phase, s.input.Value())
	}
	if got := s.Status(); got != "Question 2 of 2" {
		t.Errorf("Status = %q, want %q", got, "Question 2 of 2")
	}
}

func TestExamScreen_SyntaxErrorMessage(t *testing.T) {
	s := newScreen(t)
	typeAnswer(s, "x + $")
	s.Update(specialKey(tea.KeyEnter))

	if s.outcome == nil || s.outcome.Attempt.Verdict != answer.VerdictSyntaxError {
		t.Fatalf("outcome = %+v, want a syntax error", s.outcome)
	}
	if !strings.Contains(s.View(80, 30), "position 5") {
		t.Errorf("feedback view does not point at the bad character:\n%s", s.View(80, 30))
	}
}

func TestExamScreen_BlankEnterIgnored(t *testing.T) {
	s := newScreen(t)
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseAnswering || len(s.state.Log) != 0 {
		t.Error("blank input was submitted")
	}
}

func TestExamScreen_FinishesAfterLastQuestion(t *testing.T) {
	s := newScreen(t)
	typeAnswer(s, "-3")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress(' '))
	typeAnswer(s, "2x")
	s.Update(specialKey(tea.KeyEnter))

	if !s.state.Finished || s.state.Score != 2 {
		t.Fatalf("state = %+v, want finished with score 2", s.state)
	}
	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a FinishedMsg command")
	}
	msg, ok := cmd().(FinishedMsg)
	if !ok || msg.State != s.state {
		t.Errorf("cmd() = %#v, want FinishedMsg for the session", msg)
	}
}

func TestExamScreen_QuitConfirm(t *testing.T) {
	s := newScreen(t)
	s.Update(specialKey(tea.KeyEscape))
	if s.phase != phaseQuitConfirm {
		t.Fatalf("phase = %d, want quit confirm", s.phase)
	}
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Key != "y" {
		t.Errorf("KeyHints = %v", hints)
	}

	s.Update(keyPress('n'))
	if s.phase != phaseAnswering {
		t.Errorf("phase after n = %d, want answering", s.phase)
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a FinishedMsg command")
	}
	if _, ok := cmd().(FinishedMsg); !ok {
		t.Error("y did not finish the exam")
	}
	if s.state.Finished {
		t.Error("quitting early must not mark the session finished")
	}
}

func TestExamScreen_TitleAndStatus(t *testing.T) {
	s := newScreen(t)
	if s.Title() != "Limits" {
		t.Errorf("Title = %q, want Limits", s.Title())
	}
	if s.Status() != "Question 1 of 2" {
		t.Errorf("Status = %q", s.Status())
	}
}
