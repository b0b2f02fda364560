package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	examscreen "github.com/abhisek/calcexam/internal/screens/exam"
	"github.com/abhisek/calcexam/internal/screens/summary"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	n := answer.NewNormalizer(answer.Options{})
	defs := []bank.Definition{
		{ID: "limit", Topic: "limits", Prompt: "lim x→2 (3x-9)", Kind: "VALUE", ReferenceAnswer: "-3", MinExpectedSeconds: 10},
	}
	b, err := bank.Build("test", defs, n)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	engine := exam.NewEngine(b, answer.NewChecker(n, nil))
	state, err := engine.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return newAppModel(engine, state, i18n.Must("en"), nil)
}

func TestFinishShowsSummary(t *testing.T) {
	m := newModel(t)
	if _, err := m.engine.Submit(m.state, "-3"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	updated, _ := m.Update(examscreen.FinishedMsg{State: m.state})
	m = updated.(AppModel)

	if _, ok := m.router.Active().(*summary.SummaryScreen); !ok {
		t.Fatalf("active screen = %T, want *summary.SummaryScreen", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", m.router.Depth())
	}
}

func TestRestartStartsOver(t *testing.T) {
	m := newModel(t)
	id := m.state.ID
	if _, err := m.engine.Submit(m.state, "5"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	updated, _ := m.Update(examscreen.FinishedMsg{State: m.state})
	m = updated.(AppModel)

	updated, _ = m.Update(summary.RestartMsg{})
	m = updated.(AppModel)

	if _, ok := m.router.Active().(*examscreen.ExamScreen); !ok {
		t.Fatalf("active screen = %T, want *exam.ExamScreen", m.router.Active())
	}
	if m.state.ID != id || m.state.Finished || len(m.state.Log) != 0 || m.state.Score != 0 {
		t.Errorf("state after restart = %+v", m.state)
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)

	content := m.frame()
	for _, want := range []string{"Calculus exam", "Question 1 of 1", "Limits", "lim x→2"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = updated.(AppModel)
	if !strings.Contains(m.frame(), "40×10") {
		t.Error("small terminal did not show the size message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}
