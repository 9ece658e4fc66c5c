package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is the language used when no default language is specified.
const DefaultLang = "en"

// I18n holds an immutable, flattened translation table.
// It is safe for concurrent use once constructed.
type I18n struct {
	// Key format: "lang:namespace:dotted.key"
	translations map[string]string

	// Called on every lookup miss. Must not panic.
	missingKeyHandler func(lang, namespace, key string)

	defaultLang string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	if len(i.languages) == 0 {
		i.languages = i.collectLanguages()
	}

	return i, nil
}

// WithDefaultLanguage sets the language listed first by Languages.
// It is not used as a lookup fallback: a key missing in the requested
// language resolves to the key itself.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages.
// The default language is always placed first; the rest are sorted.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		set := make(map[string]struct{}, len(langs))
		for _, lang := range langs {
			if lang != "" && lang != i.defaultLang {
				set[lang] = struct{}{}
			}
		}
		i.languages = append([]string{i.defaultLang}, slices.Sorted(maps.Keys(set))...)
		return nil
	}
}

// WithTranslations loads a nested translation table for one language and namespace.
// Only string leaves are translatable; other leaf types are ignored.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		return i.add(lang, namespace, translations)
	}
}

// WithMissingKeyHandler sets a function called whenever a lookup misses.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T resolves a dotted key for the given language and namespace.
// Lookup order: exact language, then its base language ("ar-EG" -> "ar").
// A miss returns the key unchanged; T never fails.
func (i *I18n) T(lang, namespace, key string) string {
	if s, ok := i.Lookup(lang, namespace, key); ok {
		return s
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}

	return key
}

// Lookup is like T but reports whether the key resolved.
// It does not invoke the missing key handler.
func (i *I18n) Lookup(lang, namespace, key string) (string, bool) {
	if s, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return s, true
	}
	if base := baseLanguage(lang); base != lang {
		if s, ok := i.translations[buildKey(base, namespace, key)]; ok {
			return s, true
		}
	}
	return "", false
}

// Keys returns the sorted dotted keys defined for a language and namespace.
func (i *I18n) Keys(lang, namespace string) []string {
	prefix := lang + ":" + namespace + ":"
	keys := make([]string, 0)
	for k := range i.translations {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			keys = append(keys, rest)
		}
	}
	slices.Sort(keys)
	return keys
}

// MissingKeys returns the keys defined in the reference language that do not
// resolve to a non-empty string in lang. An empty result means the two tables
// have the same shape.
func (i *I18n) MissingKeys(reference, lang, namespace string) []string {
	var missing []string
	for _, key := range i.Keys(reference, namespace) {
		if s, ok := i.Lookup(lang, namespace, key); !ok || s == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Languages returns the available languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the default language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, namespace string, translations map[string]any) error {
	if lang == "" {
		return ErrEmptyLanguage
	}
	if namespace == "" {
		return ErrEmptyNamespace
	}
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
	return nil
}

func (i *I18n) collectLanguages() []string {
	set := make(map[string]struct{})
	for k := range i.translations {
		lang, _, _ := strings.Cut(k, ":")
		if lang != i.defaultLang {
			set[lang] = struct{}{}
		}
	}
	return append([]string{i.defaultLang}, slices.Sorted(maps.Keys(set))...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		}
	}

	return result
}

// baseLanguage strips the region from a language tag ("en-US" -> "en").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
