// Package handlers wires the site's routes to views and backends.
package handlers

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/pkg/assets"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/htmx"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/views"
)

// Links are the owner's external profiles.
type Links struct {
	GitHub   string `env:"GITHUB_URL"`
	LinkedIn string `env:"LINKEDIN_URL"`
}

// Pages serves the portfolio page and its form endpoints.
type Pages struct {
	contact contact.Submitter
	assets  assets.Resolver
	links   Links
	profile content.Profile
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithProfile replaces the default profile.
func WithProfile(p content.Profile) PagesOption {
	return func(h *Pages) { h.profile = p }
}

// WithLinks sets the social links.
func WithLinks(l Links) PagesOption {
	return func(h *Pages) { h.links = l }
}

// NewPages creates the page handler. Submissions go to submitter and asset
// URLs come from resolver.
func NewPages(submitter contact.Submitter, resolver assets.Resolver, opts ...PagesOption) *Pages {
	h := &Pages{
		contact: submitter,
		assets:  resolver,
		profile: content.DefaultProfile(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *Pages) Routes(r internal.Router) {
	r.GET("/", h.home)
	r.POST("/theme", h.toggleTheme)
	r.POST("/contact", h.submitContact)
	r.GET("/resume", h.resume)
}

func (h *Pages) home(c internal.Context) error {
	return c.Render(http.StatusOK, views.HomePage(h.page(c, views.Form{})))
}

func (h *Pages) toggleTheme(c internal.Context) error {
	theme, err := prefs.ThemeStoreFrom(c).Toggle(c)
	if err != nil {
		c.LogWarn("theme not persisted", slog.String("theme", theme.String()), slog.String("error", err.Error()))
	}
	return c.Redirect(http.StatusSeeOther, homeURL(c.Language()))
}

func (h *Pages) submitContact(c internal.Context) error {
	sub, state := contact.Prepare(contact.Submission{
		Name:       c.FormValue(contact.FieldName),
		Email:      c.FormValue(contact.FieldEmail),
		Message:    c.FormValue(contact.FieldMessage),
		Language:   c.Language().String(),
		RemoteAddr: clientIP(c.Request()),
	})

	form := views.Form{Values: sub}
	code := http.StatusOK

	switch {
	case state.HasErrors():
		form.State = state
		code = http.StatusUnprocessableEntity
	default:
		result, err := h.contact.Submit(c, sub)
		switch {
		case errors.Is(err, contact.ErrRateLimited):
			form.Notice = "contact.errors.rate_limited"
			code = http.StatusTooManyRequests
		case err != nil:
			c.LogError("contact submission failed", slog.String("error", err.Error()))
			form.Notice = "contact.errors.failed"
			code = http.StatusBadGateway
		case result.HasErrors():
			form.State = result
			code = http.StatusUnprocessableEntity
		default:
			form = views.Form{State: result}
			c.LogInfo("contact message accepted", slog.String("language", sub.Language))
		}
	}

	page := h.page(c, form)
	return c.RenderPartial(code, views.HomePage(page), views.ContactForm(page.Form),
		htmx.WithReswap(htmx.SwapOuterHTML),
	)
}

func (h *Pages) resume(c internal.Context) error {
	target, err := h.assets.URL(c, h.profile.Resume)
	if errors.Is(err, assets.ErrNotFound) {
		return internal.ErrNotFound("", internal.WithError(err), internal.WithErrorCode("errors.not_found"))
	}
	if err != nil {
		return internal.ErrBadGateway("", internal.WithError(err))
	}
	return c.Redirect(http.StatusFound, target)
}

func (h *Pages) page(c internal.Context, form views.Form) views.Home {
	loc := views.NewLocale(c.Language(), c.T)
	form.Locale = loc

	photo, err := h.assets.URL(c, h.profile.Photo)
	if err != nil {
		c.LogWarn("profile photo unavailable", slog.String("error", err.Error()))
	}

	return views.Home{
		Locale:  loc,
		Theme:   c.Theme(),
		Profile: h.profile,
		Links: views.Links{
			GitHub:   h.links.GitHub,
			LinkedIn: h.links.LinkedIn,
			Resume:   "/resume",
			Photo:    photo,
		},
		Form: form,
	}
}

// homeURL keeps the language in the address, since it is not persisted.
func homeURL(lang prefs.Language) string {
	if lang == prefs.DefaultLanguage {
		return "/"
	}
	return "/?" + url.Values{"lang": {lang.String()}}.Encode()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
