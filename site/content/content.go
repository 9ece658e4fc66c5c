// Package content holds the site's copy: the translation tables and the
// profile shown on the home page.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/portfolio/pkg/i18n"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
)

//go:embed locales
var locales embed.FS

// Locales returns the translation files, laid out as {lang}/{namespace}.yaml.
func Locales() fs.FS {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// LoadTranslations builds the translation table from the embedded locales.
// Misses are logged at debug level.
func LoadTranslations(log *slog.Logger) (*i18n.I18n, error) {
	return loadTranslations(Locales(), log)
}

func loadTranslations(fsys fs.FS, log *slog.Logger) (*i18n.I18n, error) {
	if log == nil {
		log = logger.NewNope()
	}

	langs := make([]string, 0, len(prefs.Languages))
	for _, l := range prefs.Languages {
		langs = append(langs, l.String())
	}

	tr, err := i18n.New(
		i18n.WithDefaultLanguage(prefs.DefaultLanguage.String()),
		i18n.WithLanguages(langs...),
		i18n.WithYAMLDir(fsys),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			log.Debug("missing translation",
				slog.String("lang", lang),
				slog.String("namespace", namespace),
				slog.String("key", key),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("content: load translations: %w", err)
	}
	return tr, nil
}

// Parity lists, per language, the keys of the default language table that do
// not resolve to a non-empty string. An empty map means every language covers
// the full table.
func Parity(tr *i18n.I18n) map[string][]string {
	ref := prefs.DefaultLanguage.String()
	out := make(map[string][]string)
	for _, l := range prefs.Languages {
		if l == prefs.DefaultLanguage {
			continue
		}
		if missing := tr.MissingKeys(ref, l.String(), prefs.DefaultNamespace); len(missing) > 0 {
			out[l.String()] = missing
		}
	}
	return out
}
