package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/htmx"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/views"
)

// ErrorHandler renders failures as a translated error page. It works with or
// without the preference stores on the context: a rejected language, for
// one, fails before they are attached.
func ErrorHandler(tr prefs.Translator, profile content.Profile) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		status, key := classify(err)

		if status >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", status), slog.String("error", err.Error()))
		} else {
			c.LogDebug("request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		}

		lang := prefs.DefaultLanguage
		if s, ok := prefs.LookupLanguageStore(c); ok {
			lang = s.Language()
		}

		page := views.ErrorPage(views.Error{
			Locale: views.NewLocale(lang, func(k string) string {
				return tr.T(lang.String(), prefs.DefaultNamespace, k)
			}),
			Status:      status,
			MessageKey:  key,
			Title:       profile.Title,
			Description: profile.Description,
		})

		return c.Render(status, page,
			htmx.WithRetarget("body"),
			htmx.WithReswap(htmx.SwapInnerHTML),
		)
	}
}

// NotFound is the handler for unmatched routes.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("", internal.WithErrorCode("errors.not_found"))
}

func classify(err error) (int, string) {
	switch {
	case middlewares.IsTimeoutError(err):
		return http.StatusServiceUnavailable, "errors.internal"
	case errors.Is(err, prefs.ErrNoThemeStore), errors.Is(err, prefs.ErrNoLanguageStore):
		return http.StatusInternalServerError, "errors.internal"
	}

	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		key := httpErr.ErrorCode
		if key == "" {
			key = "errors.internal"
			if httpErr.Code == http.StatusNotFound {
				key = "errors.not_found"
			}
		}
		return httpErr.Code, key
	}
	return http.StatusInternalServerError, "errors.internal"
}
