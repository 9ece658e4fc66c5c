package i18n_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/i18n"
)

func newTestI18n(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()

	base := []i18n.Option{
		i18n.WithTranslations("en", "site", map[string]any{
			"nav": map[string]any{
				"about":   "About",
				"contact": "Contact",
			},
			"hero": map[string]any{
				"title": "Fullstack Developer",
			},
			"meta": map[string]any{
				"version": 3,
			},
		}),
		i18n.WithTranslations("ar", "site", map[string]any{
			"nav": map[string]any{
				"about":   "من أنا",
				"contact": "تواصل معي",
			},
		}),
	}

	inst, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return inst
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates instance with defaults", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New()
		require.NoError(t, err)
		require.Equal(t, "en", inst.DefaultLanguage())
		require.Equal(t, []string{"en"}, inst.Languages())
	})

	t.Run("returns error for empty default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("returns error for empty language in translations", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithTranslations("", "site", map[string]any{"a": "b"}))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("returns error for empty namespace in translations", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithTranslations("en", "", map[string]any{"a": "b"}))
		require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
	})

	t.Run("collects languages from translations", func(t *testing.T) {
		t.Parallel()
		inst := newTestI18n(t)
		require.Equal(t, []string{"en", "ar"}, inst.Languages())
	})

	t.Run("explicit languages keep default first", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New(
			i18n.WithDefaultLanguage("en"),
			i18n.WithLanguages("de", "ar", "en", ""),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"en", "ar", "de"}, inst.Languages())
	})
}

func TestT(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{name: "nested key in english", lang: "en", key: "nav.about", want: "About"},
		{name: "nested key in arabic", lang: "ar", key: "nav.contact", want: "تواصل معي"},
		{name: "regional tag uses base language", lang: "ar-EG", key: "nav.about", want: "من أنا"},
		{name: "missing key returns key", lang: "en", key: "nav.missing", want: "nav.missing"},
		{name: "no fallback to another language", lang: "ar", key: "hero.title", want: "hero.title"},
		{name: "intermediate node returns key", lang: "en", key: "nav", want: "nav"},
		{name: "non-string leaf returns key", lang: "en", key: "meta.version", want: "meta.version"},
		{name: "unknown language returns key", lang: "fr", key: "nav.about", want: "nav.about"},
		{name: "empty key returns empty", lang: "en", key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, inst.T(tt.lang, "site", tt.key))
		})
	}
}

func TestMissingKeyHandler(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		missed []string
	)
	inst := newTestI18n(t, i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
		mu.Lock()
		defer mu.Unlock()
		missed = append(missed, lang+":"+namespace+":"+key)
	}))

	require.Equal(t, "About", inst.T("en", "site", "nav.about"))
	require.Equal(t, "hero.title", inst.T("ar", "site", "hero.title"))

	_, ok := inst.Lookup("ar", "site", "hero.title")
	require.False(t, ok)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"ar:site:hero.title"}, missed)
}

func TestKeysAndMissingKeys(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	if diff := cmp.Diff([]string{"hero.title", "nav.about", "nav.contact"}, inst.Keys("en", "site")); diff != "" {
		t.Fatalf("Keys(en) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hero.title"}, inst.MissingKeys("en", "ar", "site")); diff != "" {
		t.Fatalf("MissingKeys(en, ar) mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, inst.MissingKeys("ar", "en", "site"))
	require.Empty(t, inst.Keys("en", "unknown"))
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	inst := newTestI18n(t)

	t.Run("binds language and namespace", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "ar", "site")
		require.Equal(t, "ar", tr.Language())
		require.Equal(t, "site", tr.Namespace())
		require.Equal(t, "من أنا", tr.T("nav.about"))
		require.Equal(t, "nav.unknown", tr.T("nav.unknown"))
	})

	t.Run("empty language uses default", func(t *testing.T) {
		t.Parallel()
		tr := i18n.NewTranslator(inst, "", "site")
		require.Equal(t, "en", tr.Language())
		require.Equal(t, "About", tr.T("nav.about"))
	})

	t.Run("panics without service", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { i18n.NewTranslator(nil, "en", "site") })
	})
}
