// Package i18n translates the game's status and help texts. English texts
// are the message keys; other languages come from embedded .po catalogs.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage needs no catalog.
const DefaultLanguage = "en"

//go:embed locales/*.po
var localesFS embed.FS

// ErrUnsupported is returned for a language without a catalog.
var ErrUnsupported = errors.New("unsupported language")

// Catalog translates message keys into one language.
type Catalog struct {
	lang   string
	locale *gotext.Locale
}

// New returns the catalog for lang. The empty string and "en" give the
// identity catalog.
func New(lang string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == DefaultLanguage {
		return &Catalog{lang: DefaultLanguage}, nil
	}

	data, err := localesFS.ReadFile("locales/" + lang + ".po")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", lang, err)
	}

	po := gotext.NewPo()
	po.Parse(data)
	locale := gotext.NewLocale("", lang)
	locale.AddTranslator("default", po)
	return &Catalog{lang: lang, locale: locale}, nil
}

// Language returns the catalog language.
func (c *Catalog) Language() string { return c.lang }

// T translates key, formatting it with args when given. Unknown keys are
// returned as is.
func (c *Catalog) T(key string, args ...interface{}) string {
	if c == nil || c.locale == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
	return c.locale.Get(key, args...)
}

// Translate is T without arguments, usable as a plain func(string) string.
func (c *Catalog) Translate(key string) string {
	if c == nil || c.locale == nil {
		return key
	}
	return c.locale.Get(key)
}

// Languages lists every supported language code, sorted.
func Languages() []string {
	langs := []string{DefaultLanguage}
	entries, err := fs.ReadDir(localesFS, "locales")
	if err != nil {
		return langs
	}
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".po"); ok {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}
