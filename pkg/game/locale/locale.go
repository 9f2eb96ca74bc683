// Package locale loads the game's message catalogues.
//
// Catalogues are gettext .po files embedded in the binary. Message IDs are
// upper-case keys (HOLE_BLOCKED, CHEST_OPENED, ...); a key missing from the
// catalogue is returned unchanged. Get only looks a key up; Getf also formats
// the translated template with fmt verbs.
package locale

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/samber/oops"
)

// DefaultLanguage is used when no locale is configured.
const DefaultLanguage = "en"

//go:embed locales/*.po
var catalogues embed.FS

// Catalogue is one loaded language.
type Catalogue struct {
	lang     string
	messages map[string]string
}

var current *Catalogue

// Load parses the embedded catalogue for lang and makes it current.
func Load(lang string) (*Catalogue, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	lang = strings.ToLower(lang)

	data, err := catalogues.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, oops.Code("UNKNOWN_LOCALE").
			With("locale", lang).
			With("available", Languages()).
			Wrapf(err, "no catalogue for locale %q", lang)
	}

	po := gotext.NewPo()
	po.Parse(data)

	c := &Catalogue{lang: lang, messages: make(map[string]string)}
	for id, tr := range po.GetDomain().GetTranslations() {
		c.messages[id] = tr.Get()
	}
	current = c
	return c, nil
}

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, err := catalogues.ReadDir("locales")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(out)
	return out
}

// Language returns the catalogue's language code.
func (c *Catalogue) Language() string {
	return c.lang
}

// Get translates key.
func (c *Catalogue) Get(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok && msg != "" {
		return msg
	}
	return key
}

// Getf translates key and fills the template's verbs from vars.
func (c *Catalogue) Getf(key string, vars ...any) string {
	return fmt.Sprintf(c.Get(key), vars...)
}

// Get translates key with the current catalogue, loading the default
// language on first use.
func Get(key string) string {
	return active().Get(key)
}

// Getf is Get followed by formatting with vars.
func Getf(key string, vars ...any) string {
	return active().Getf(key, vars...)
}

// active returns the current catalogue, or nil when even the default
// language cannot be loaded.
func active() *Catalogue {
	if current == nil {
		if _, err := Load(DefaultLanguage); err != nil {
			return nil
		}
	}
	return current
}
