// Package locale provides the translated strings shown for shortcuts and
// other user-facing labels.
package locale

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var messageFiles embed.FS

// DefaultLanguage is used when no requested language matches.
var DefaultLanguage = language.English

// Catalog holds every loaded translation.
type Catalog struct {
	bundle *i18n.Bundle
}

// New loads the embedded message files.
func New() (*Catalog, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(messageFiles, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("locale: list message files: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(messageFiles, f); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", f, err)
		}
	}
	return &Catalog{bundle: bundle}, nil
}

// LoadFile adds translations from a TOML message file on disk, e.g.
// "active.fr.toml".
func (c *Catalog) LoadFile(path string) error {
	if _, err := c.bundle.LoadMessageFile(path); err != nil {
		return fmt.Errorf("locale: load %s: %w", path, err)
	}
	return nil
}

// Languages returns the languages with loaded translations.
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

// Localizer picks the best translation for the given BCP 47 language
// preferences ("es", "es-MX", "en-US").
func (c *Catalog) Localizer(langs ...string) *Localizer {
	return &Localizer{l: i18n.NewLocalizer(c.bundle, langs...)}
}

// Localizer resolves message IDs for one set of language preferences.
type Localizer struct {
	l *i18n.Localizer
}

// Message returns the translation of id, or fallback when there is none.
func (l *Localizer) Message(id, fallback string) string {
	return l.Template(id, fallback, nil)
}

// Template is like Message with template data for {{.Field}} placeholders.
// The fallback is rendered with the same data.
func (l *Localizer) Template(id, fallback string, data map[string]any) string {
	msg, _ := l.l.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		TemplateData:   data,
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
	})
	if msg == "" {
		return fallback
	}
	return msg
}
