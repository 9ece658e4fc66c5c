// Package views renders the site's pages. Templates are plain html/template
// files exposed as templ components, so they plug into Context.Render.
package views

import (
	"context"
	"embed"
	"html"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/site/content"
)

var (
	//go:embed templates
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS

	templates = template.Must(template.New("views").ParseFS(templateFS, "templates/*.html"))
)

// Stylesheet is the path the site stylesheet is served from.
const Stylesheet = "/static/app.css"

// Static returns the files served under /static.
func Static() fs.FS {
	return staticFS
}

// Locale carries the language of one render and its translations.
type Locale struct {
	Lang      prefs.Language
	translate func(string) string
}

// NewLocale binds a translation function to lang. A nil tr echoes keys.
func NewLocale(lang prefs.Language, tr func(string) string) Locale {
	if tr == nil {
		tr = func(key string) string { return key }
	}
	return Locale{Lang: lang, translate: tr}
}

// T translates a dotted key.
func (l Locale) T(key string) string {
	if l.translate == nil {
		return key
	}
	return l.translate(key)
}

// Dir is the text direction of the locale's language.
func (l Locale) Dir() prefs.Direction { return l.Lang.Direction() }

// Localize picks the locale's variant of a per-language string.
func (l Locale) Localize(s content.Localized) string { return s.In(l.Lang) }

// Percent formats n as a percentage in the locale's number system.
func (l Locale) Percent(n int) string {
	return message.NewPrinter(l.Lang.Tag()).Sprintf("%d%%", n)
}

// OtherLanguage is the language the switcher offers.
func (l Locale) OtherLanguage() prefs.Language {
	if l.Lang == prefs.Arabic {
		return prefs.English
	}
	return prefs.Arabic
}

// OtherLanguageName is the switcher label: the offered language's own name.
func (l Locale) OtherLanguageName() string {
	return display.Self.Name(l.OtherLanguage().Tag())
}

// Links are the external and asset URLs shown on the home page.
type Links struct {
	GitHub   string
	LinkedIn string
	Resume   string
	Photo    string
}

// Form is the contact form, either embedded in the page or swapped by htmx.
type Form struct {
	Locale
	Values contact.Submission
	State  contact.State
	// Notice is a translation key for a form-wide error.
	Notice string
}

// FieldError returns the translated error for field, or "".
// Wording supplied by the form backend is shown as is.
func (f Form) FieldError(field string) string {
	fe, ok := f.State.Error(field)
	if !ok {
		return ""
	}
	if fe.Message != "" {
		return fe.Message
	}
	return f.T("contact.errors." + fe.Code)
}

// Home is the single-page portfolio.
type Home struct {
	Locale
	Theme   prefs.Theme
	Profile content.Profile
	Links   Links
	Form    Form
}

// Error is a full-page error.
type Error struct {
	Locale
	Status      int
	MessageKey  string
	Title       string
	Description string
}

// HomePage renders the whole document.
func HomePage(h Home) templ.Component {
	if h.Form.translate == nil {
		h.Form.Locale = h.Locale
	}
	return document(h.Profile.Title, h.Profile.Description, h.Locale, fragment("home", h))
}

// ContactForm renders only the form, for htmx swaps.
func ContactForm(f Form) templ.Component {
	return fragment("contact_form", f)
}

// ErrorPage renders a standalone error document.
func ErrorPage(e Error) templ.Component {
	if e.MessageKey == "" {
		e.MessageKey = "errors.internal"
	}
	return document(e.Title, e.Description, e.Locale, fragment("error", e))
}

func fragment(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

type head struct {
	Lang        prefs.Language
	Class       string
	Title       string
	Description string
	Stylesheet  string
}

// document wraps body in <html>. The root classes come from the request's
// prefs.Root. With preference stores on the context, body renders inside the
// language provider and waits on the theme gate too.
func document(title, description string, loc Locale, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		root := prefs.RootFrom(ctx)
		if err := templates.ExecuteTemplate(w, "document_open", head{
			Lang:        loc.Lang,
			Class:       root.Class(),
			Title:       title,
			Description: description,
			Stylesheet:  Stylesheet,
		}); err != nil {
			return err
		}

		if err := provide(ctx, w, loc, body); err != nil {
			return err
		}

		return templates.ExecuteTemplate(w, "document_close", nil)
	})
}

func provide(ctx context.Context, w io.Writer, loc Locale, body templ.Component) error {
	if lang, ok := prefs.LookupLanguageStore(ctx); ok {
		var gates []*prefs.Gate
		if theme, ok := prefs.LookupThemeStore(ctx); ok {
			gates = append(gates, theme.Gate())
		}
		return prefs.Provider(lang, body, gates...).Render(ctx, w)
	}

	// Error pages can render before the stores exist.
	if _, err := io.WriteString(w, `<div dir="`+html.EscapeString(loc.Dir().String())+`">`); err != nil {
		return err
	}
	if err := body.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</div>")
	return err
}
