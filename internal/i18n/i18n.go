// Package i18n localizes user-facing text. Catalogs for every supported
// language are embedded.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "es"

//go:embed locales/*.json
var localeFS embed.FS

// Localizer translates message IDs for one language. A missing message
// renders as its ID.
type Localizer struct {
	lang   string
	loc    *i18n.Localizer
	logger *zap.Logger
}

// New loads the embedded catalogs and returns a localizer for lang. The
// default language is the fallback for missing messages.
func New(lang string, logger *zap.Logger) (*Localizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lang == "" {
		lang = DefaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	base, _ := tag.Base()
	if !isSupported(base.String()) {
		return nil, fmt.Errorf("unsupported language %q (have %s)", lang, strings.Join(Supported(), ", "))
	}

	bundle := i18n.NewBundle(language.MustParse(DefaultLang))
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}

	return &Localizer{
		lang:   base.String(),
		loc:    i18n.NewLocalizer(bundle, tag.String(), DefaultLang),
		logger: logger,
	}, nil
}

// Must is New for callers with a fixed, known-good language.
func Must(lang string) *Localizer {
	l, err := New(lang, nil)
	if err != nil {
		panic(err)
	}
	return l
}

// Supported returns the languages with an embedded catalog.
func Supported() []string {
	entries, _ := localeFS.ReadDir("locales")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(langs)
	return langs
}

func isSupported(lang string) bool {
	for _, l := range Supported() {
		if l == lang {
			return true
		}
	}
	return false
}

// Lang returns the base language code, e.g. "es".
func (l *Localizer) Lang() string { return l.lang }

// T translates a message by ID.
func (l *Localizer) T(msgID string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (l *Localizer) Td(msgID string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (l *Localizer) Tp(msgID string, count int) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (l *Localizer) localize(cfg *i18n.LocalizeConfig) string {
	s, err := l.loc.Localize(cfg)
	if err != nil {
		l.logger.Warn("missing translation", zap.String("id", cfg.MessageID), zap.String("lang", l.lang), zap.Error(err))
		if s == "" {
			return cfg.MessageID
		}
	}
	return s
}

type ctxKey struct{}

// WithLocalizer stores a localizer in the context.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the context's localizer, or fallback when none is set.
func FromContext(ctx context.Context, fallback *Localizer) *Localizer {
	if l, ok := ctx.Value(ctxKey{}).(*Localizer); ok {
		return l
	}
	return fallback
}
