package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/i18n"
)

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	t.Run("loads languages and namespaces", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en/site.yaml":   {Data: []byte("nav:\n  about: About\nhero:\n  title: Developer\n")},
			"ar/site.yml":    {Data: []byte("nav:\n  about: من أنا\n")},
			"en/errors.yaml": {Data: []byte("not_found: Not found\n")},
			"en/README.md":   {Data: []byte("ignored")},
		}

		inst, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.NoError(t, err)

		require.Equal(t, "About", inst.T("en", "site", "nav.about"))
		require.Equal(t, "Developer", inst.T("en", "site", "hero.title"))
		require.Equal(t, "من أنا", inst.T("ar", "site", "nav.about"))
		require.Equal(t, "Not found", inst.T("en", "errors", "not_found"))
		require.Equal(t, []string{"en", "ar"}, inst.Languages())
	})

	t.Run("rejects files outside a language directory", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"site.yaml": {Data: []byte("a: b\n")},
		}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en/site.yaml": {Data: []byte("nav: [unterminated\n")},
		}
		_, err := i18n.New(i18n.WithYAMLDir(fsys))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}
