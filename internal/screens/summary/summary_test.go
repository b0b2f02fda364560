package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/report"
	"github.com/abhisek/calcexam/internal/timing"
)

func testReport() *report.Report {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &exam.SessionState{
		ID:           "s-1",
		CurrentIndex: 2,
		Score:        1,
		Log: []exam.AttemptRecord{
			{QuestionID: "lim-linear", RawInput: "-3", IsCorrect: true, Verdict: answer.VerdictCorrect, ElapsedSeconds: 2, TimingFlag: timing.FlagTooFast, SubmittedAt: at},
			{QuestionID: "lim-factor", RawInput: "5", Verdict: answer.VerdictIncorrect, ElapsedSeconds: 40, TimingFlag: timing.FlagNormal, SubmittedAt: at},
		},
	}
	return report.Summarize(bank.Default(), s)
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testReport(), i18n.Must("en"))
	if s.Title() != "Exam finished" {
		t.Errorf("Title = %q, want %q", s.Title(), "Exam finished")
	}
	if s.Status() != "Score 1/16" {
		t.Errorf("Status = %q, want %q", s.Status(), "Score 1/16")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testReport(), i18n.Must("en"))
	view := s.View(120, 40)
	for _, want := range []string{"2 questions answered", "1 attempt flagged", "Exam report"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Restart(t *testing.T) {
	s := New(testReport(), i18n.Must("en"))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if _, ok := cmd().(RestartMsg); !ok {
		t.Error("r did not request a restart")
	}
}

func TestSummaryScreen_Quit(t *testing.T) {
	s := New(testReport(), i18n.Must("en"))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command on q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testReport(), i18n.Must("es"))
	hints := s.KeyHints()
	if len(hints) != 3 || hints[1].Description != "reiniciar" {
		t.Errorf("KeyHints = %v", hints)
	}
}
