package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslateSpanish(t *testing.T) {
	l := Must("es")
	if got := l.T("TopicDerivatives"); got != "Derivadas" {
		t.Errorf("T(TopicDerivatives) = %q, want 'Derivadas'", got)
	}
	if got := l.Lang(); got != "es" {
		t.Errorf("Lang() = %q, want 'es'", got)
	}
}

func TestTranslateEnglish(t *testing.T) {
	l := Must("en-US")
	if got := l.T("VerdictSyntaxError"); got != "syntax error" {
		t.Errorf("T(VerdictSyntaxError) = %q, want 'syntax error'", got)
	}
	if got := l.Lang(); got != "en" {
		t.Errorf("Lang() = %q, want 'en'", got)
	}
}

func TestDefaultLanguage(t *testing.T) {
	l, err := New("", nil)
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	if l.Lang() != DefaultLang {
		t.Errorf("Lang() = %q, want %q", l.Lang(), DefaultLang)
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	if _, err := New("ru", nil); err == nil {
		t.Error("New(ru) succeeded, want error")
	}
	if _, err := New("not a tag!", nil); err == nil {
		t.Error("New with a malformed tag succeeded, want error")
	}
}

func TestPluralTranslation(t *testing.T) {
	l := Must("en")
	if got := l.Tp("QuestionsAnswered", 1); got != "1 question answered" {
		t.Errorf("Tp(QuestionsAnswered, 1) = %q", got)
	}
	if got := l.Tp("QuestionsAnswered", 5); got != "5 questions answered" {
		t.Errorf("Tp(QuestionsAnswered, 5) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	l := Must("es")
	got := l.Td("QuestionCounter", map[string]any{"Current": 3, "Total": 16})
	if got != "Pregunta 3 de 16" {
		t.Errorf("Td(QuestionCounter) = %q, want 'Pregunta 3 de 16'", got)
	}
}

func TestMissingMessageReturnsID(t *testing.T) {
	l := Must("en")
	if got := l.T("NoSuchMessage"); got != "NoSuchMessage" {
		t.Errorf("T(NoSuchMessage) = %q, want the ID", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en, es := Must("en"), Must("es")
	for _, id := range []string{"AppTitle", "ReportTitle", "Score", "FlagTooFast", "HintLabel", "Suspicious"} {
		if en.T(id) == id || es.T(id) == id {
			t.Errorf("message %s missing from a catalog", id)
		}
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := Middleware(Must("es"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context(), nil).Lang()
	}))

	tests := []struct {
		query, header, want string
	}{
		{"", "", "es"},
		{"", "en-GB,en;q=0.8", "en"},
		{"lang=en", "", "en"},
		{"", "fr-FR", "es"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if tt.header != "" {
			req.Header.Set("Accept-Language", tt.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if got != tt.want {
			t.Errorf("query %q header %q: lang = %q, want %q", tt.query, tt.header, got, tt.want)
		}
	}
}

func TestFromContextFallback(t *testing.T) {
	fb := Must("en")
	if got := FromContext(context.Background(), fb); got != fb {
		t.Error("FromContext without a localizer did not return the fallback")
	}
}
