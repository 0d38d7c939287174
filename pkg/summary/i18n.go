package summary

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "zh"

var bundle = loadBundle()

func loadBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.Chinese)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error("locales unreadable", "component", "summary", "err", err)
		return b
	}
	for _, f := range files {
		name := f.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := b.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error("locale load failed", "component", "summary", "file", name, "err", err)
		}
	}
	return b
}

// Languages lists the tags messages exist for.
func Languages() []string {
	tags := bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// Messages looks up the fixed strings of one language.
type Messages struct {
	loc *i18n.Localizer
}

// NewMessages returns the messages for lang, falling back to Chinese.
func NewMessages(lang string) Messages {
	if lang == "" {
		lang = DefaultLanguage
	}
	return Messages{loc: i18n.NewLocalizer(bundle, lang, DefaultLanguage)}
}

// Get returns the message id, or id itself when it is missing.
func (m Messages) Get(id string) string {
	return m.With(id, nil)
}

// With renders message id with template data.
func (m Messages) With(id string, data map[string]string) string {
	msg, err := m.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		slog.Debug("missing translation", "component", "summary", "key", id, "err", err)
		return id
	}
	return msg
}
