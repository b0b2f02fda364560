package report

import (
	"errors"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/i18n"
)

// Feedback returns the message shown after an attempt whose input could
// not be read, or "" when err is not a syntax problem. Positions are
// reported 1-based.
func Feedback(l *i18n.Localizer, err error) string {
	var nerr *answer.NormalizationError
	if !errors.As(err, &nerr) {
		return ""
	}
	data := map[string]any{"Reason": nerr.Reason}
	if nerr.Pos >= 0 {
		data["Pos"] = nerr.Pos + 1
		return l.Td("SyntaxErrorAt", data)
	}
	return l.Td("SyntaxError", data)
}
