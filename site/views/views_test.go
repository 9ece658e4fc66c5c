package views_test

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/views"
)

// session builds initialized stores the way the preferences middleware does.
func session(t *testing.T, lang prefs.Language, theme prefs.Theme) (context.Context, *prefs.LanguageStore) {
	t.Helper()

	tr, err := content.LoadTranslations(nil)
	require.NoError(t, err)

	ctx := context.Background()
	root := prefs.NewRoot()
	themes := prefs.NewThemeStore(prefs.NewMemoryStorage(nil), prefs.StaticPlatform(theme), root)
	require.NoError(t, themes.Initialize(ctx))

	langs := prefs.NewLanguageStore(tr, root)
	langs.Initialize(ctx)
	require.NoError(t, langs.SetLanguage(lang))

	ctx = prefs.WithRoot(ctx, root)
	ctx = prefs.WithThemeStore(ctx, themes)
	ctx = prefs.WithLanguageStore(ctx, langs)
	return ctx, langs
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(ctx, &sb))
	return sb.String()
}

func home(ctx context.Context, langs *prefs.LanguageStore) views.Home {
	return views.Home{
		Locale:  views.NewLocale(langs.Language(), langs.T),
		Theme:   prefs.ThemeStoreFrom(ctx).Theme(),
		Profile: content.DefaultProfile(),
		Links:   views.Links{Resume: "/resume", Photo: "/assets/photo.jpg", GitHub: "https://github.com/example"},
	}
}

func TestHomePage(t *testing.T) {
	t.Parallel()

	t.Run("english light", func(t *testing.T) {
		t.Parallel()
		ctx, langs := session(t, prefs.English, prefs.ThemeLight)
		out := render(t, ctx, views.HomePage(home(ctx, langs)))

		assert.Contains(t, out, `<html lang="en" class="">`)
		assert.Contains(t, out, `<div dir="ltr">`)
		assert.Contains(t, out, "<title>Haian Ibrahim - Fullstack Developer</title>")
		assert.Contains(t, out, "Fullstack Developer")
		assert.Contains(t, out, ">العربية</a>")
		assert.Contains(t, out, "90%")
		assert.Contains(t, out, `href="#contact"`)
		assert.Contains(t, out, `href="https://github.com/example"`)
		assert.NotContains(t, out, "LinkedIn Profile")
	})

	t.Run("arabic dark", func(t *testing.T) {
		t.Parallel()
		ctx, langs := session(t, prefs.Arabic, prefs.ThemeDark)
		out := render(t, ctx, views.HomePage(home(ctx, langs)))

		assert.Contains(t, out, `<html lang="ar" class="dark">`)
		assert.Contains(t, out, `<div dir="rtl">`)
		assert.Contains(t, out, "حيان ابراهيم")
		assert.Contains(t, out, "مطور ويب متكامل")
		assert.Contains(t, out, ">English</a>")
		assert.Contains(t, out, `name="lang" value="ar"`)
	})

	t.Run("renders nothing inside the gate before initialization", func(t *testing.T) {
		t.Parallel()
		tr, err := content.LoadTranslations(nil)
		require.NoError(t, err)
		root := prefs.NewRoot()
		langs := prefs.NewLanguageStore(tr, root)
		ctx := prefs.WithLanguageStore(prefs.WithRoot(context.Background(), root), langs)

		out := render(t, ctx, views.HomePage(views.Home{
			Locale:  views.NewLocale(prefs.English, nil),
			Profile: content.DefaultProfile(),
		}))
		assert.Contains(t, out, "<html")
		assert.NotContains(t, out, "<main")
		assert.NotContains(t, out, `dir=`)
	})
}

func TestContactForm(t *testing.T) {
	t.Parallel()

	ctx, langs := session(t, prefs.English, prefs.ThemeLight)
	loc := views.NewLocale(langs.Language(), langs.T)

	t.Run("field errors", func(t *testing.T) {
		t.Parallel()
		out := render(t, ctx, views.ContactForm(views.Form{
			Locale: loc,
			Values: contact.Submission{Name: "Ada", Email: "nope"},
			State: contact.State{Errors: []contact.FieldError{
				{Field: contact.FieldEmail, Code: contact.CodeInvalid},
				{Field: contact.FieldMessage, Message: "should be longer"},
			}},
		}))
		assert.Contains(t, out, `id="contact-form"`)
		assert.Contains(t, out, `value="Ada"`)
		assert.Contains(t, out, "Please enter a valid email address.")
		assert.Contains(t, out, "should be longer")
		assert.NotContains(t, out, `data-field="name"`)
		assert.NotContains(t, out, "form-success")
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		out := render(t, ctx, views.ContactForm(views.Form{Locale: loc, State: contact.State{Succeeded: true}}))
		assert.Contains(t, out, "Thanks for reaching out! I&#39;ll get back to you soon.")
	})

	t.Run("submitting", func(t *testing.T) {
		t.Parallel()
		out := render(t, ctx, views.ContactForm(views.Form{Locale: loc, State: contact.State{Submitting: true}}))
		assert.Contains(t, out, "Sending...")
		assert.Contains(t, out, " disabled>")
	})

	t.Run("notice", func(t *testing.T) {
		t.Parallel()
		out := render(t, ctx, views.ContactForm(views.Form{Locale: loc, Notice: "contact.errors.rate_limited"}))
		assert.Contains(t, out, "Too many messages. Please try again later.")
	})
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	// No stores on the context.
	out := render(t, context.Background(), views.ErrorPage(views.Error{
		Locale: views.NewLocale(prefs.Arabic, nil),
		Status: 404,
	}))
	assert.Contains(t, out, `<html lang="ar" class="">`)
	assert.Contains(t, out, `<div dir="rtl">`)
	assert.Contains(t, out, "<h1>404</h1>")
	assert.Contains(t, out, "errors.internal")
}

func TestLocale(t *testing.T) {
	t.Parallel()

	en := views.NewLocale(prefs.English, nil)
	assert.Equal(t, "missing.key", en.T("missing.key"))
	assert.Equal(t, prefs.Arabic, en.OtherLanguage())
	assert.Equal(t, "العربية", en.OtherLanguageName())
	assert.Equal(t, "30%", en.Percent(30))

	ar := views.NewLocale(prefs.Arabic, nil)
	assert.Equal(t, prefs.English, ar.OtherLanguage())
	assert.Equal(t, "English", ar.OtherLanguageName())
	assert.Equal(t, prefs.RTL, ar.Dir())
}
