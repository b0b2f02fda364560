package i18n

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Middleware picks a localizer per request from the lang query parameter or
// the Accept-Language header, falling back to fallback, and stores it in the
// request context.
func Middleware(fallback *Localizer) func(http.Handler) http.Handler {
	supported := Supported()
	tags := make([]language.Tag, 0, len(supported)+1)
	tags = append(tags, language.MustParse(fallback.Lang()))
	for _, s := range supported {
		tags = append(tags, language.MustParse(s))
	}
	matcher := language.NewMatcher(tags)

	locs := map[string]*Localizer{fallback.Lang(): fallback}
	for _, s := range supported {
		if _, ok := locs[s]; ok {
			continue
		}
		if l, err := New(s, fallback.logger); err == nil {
			locs[s] = l
		} else {
			fallback.logger.Warn("load localizer", zap.String("lang", s), zap.Error(err))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := fallback
			tag, _ := language.MatchStrings(matcher, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
			base, _ := tag.Base()
			if l, ok := locs[base.String()]; ok {
				loc = l
			}
			next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), loc)))
		})
	}
}
