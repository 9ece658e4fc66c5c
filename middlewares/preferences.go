package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/pkg/cache"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
)

// DefaultLanguageParam is the query or form field selecting the language.
const DefaultLanguageParam = "lang"

// StorageFactory builds the theme storage for one request.
type StorageFactory func(c internal.Context) (prefs.Storage, error)

// PlatformFactory builds the ambient preference source for one request.
type PlatformFactory func(r *http.Request) prefs.Platform

// PreferencesConfig configures the preferences middleware.
type PreferencesConfig struct {
	Storage       StorageFactory
	Platform      PlatformFactory
	DefaultTheme  prefs.Theme
	LanguageParam string
	Namespace     string
}

// PreferencesOption configures PreferencesConfig.
type PreferencesOption func(*PreferencesConfig)

// WithPreferencesStorage replaces the default cookie storage.
func WithPreferencesStorage(f StorageFactory) PreferencesOption {
	return func(cfg *PreferencesConfig) {
		if f != nil {
			cfg.Storage = f
		}
	}
}

// WithCacheStorage keeps the theme server-side in c, keyed by an anonymous
// visitor id cookie. A zero ttl uses the cache default.
func WithCacheStorage(c cache.Cache[string], ttl time.Duration) PreferencesOption {
	return WithPreferencesStorage(func(ctx internal.Context) (prefs.Storage, error) {
		visitor, err := prefs.EnsureVisitor(ctx.Cookies(), ctx.Response(), ctx.Request())
		if err != nil {
			return nil, err
		}
		return prefs.NewCacheStorage(c, visitor, ttl), nil
	})
}

// WithPreferencesPlatform replaces the client hints platform.
func WithPreferencesPlatform(f PlatformFactory) PreferencesOption {
	return func(cfg *PreferencesConfig) {
		if f != nil {
			cfg.Platform = f
		}
	}
}

// WithPreferencesDefaultTheme sets the theme reported before initialization.
func WithPreferencesDefaultTheme(t prefs.Theme) PreferencesOption {
	return func(cfg *PreferencesConfig) {
		cfg.DefaultTheme = t
	}
}

// WithLanguageParam renames the field carrying an explicit language choice.
func WithLanguageParam(name string) PreferencesOption {
	return func(cfg *PreferencesConfig) {
		if name != "" {
			cfg.LanguageParam = name
		}
	}
}

// WithPreferencesNamespace sets the translation namespace.
func WithPreferencesNamespace(ns string) PreferencesOption {
	return func(cfg *PreferencesConfig) {
		cfg.Namespace = ns
	}
}

// Preferences returns middleware that gives every request its own theme and
// language stores, initializes both and attaches them, together with the
// document root they write to, to the request context.
//
// The theme comes from storage (a signed cookie by default) or, when nothing
// valid is stored, from the Sec-CH-Prefers-Color-Scheme client hint. The
// language always starts as English; an explicit "lang" query or form value
// switches it for this request only. An unsupported value is a 400.
func Preferences(translator prefs.Translator, opts ...PreferencesOption) internal.Middleware {
	cfg := &PreferencesConfig{
		Storage: func(c internal.Context) (prefs.Storage, error) {
			return prefs.NewCookieStorage(c.Cookies(), c.Response(), c.Request()), nil
		},
		Platform: func(r *http.Request) prefs.Platform {
			return prefs.ClientHints{Header: r.Header}
		},
		DefaultTheme:  prefs.ThemeDark,
		LanguageParam: DefaultLanguageParam,
		Namespace:     prefs.DefaultNamespace,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			prefs.AdvertiseClientHints(c.Response().Header())

			storage, err := cfg.Storage(c)
			if err != nil {
				return internal.ErrInternal("", internal.WithError(err))
			}

			root := prefs.NewRoot()
			theme := prefs.NewThemeStore(storage, cfg.Platform(c.Request()), root,
				prefs.WithDefaultTheme(cfg.DefaultTheme),
				prefs.WithThemeLogger(c.Logger()),
			)
			if err := theme.Initialize(c); err != nil {
				c.LogWarn("theme not persisted", slog.String("error", err.Error()))
			}

			lang := prefs.NewLanguageStore(translator, root, prefs.WithNamespace(cfg.Namespace))
			lang.Initialize(c)

			if raw := c.FormValue(cfg.LanguageParam); raw != "" {
				l, err := prefs.ParseLanguage(raw)
				if err == nil {
					err = lang.SetLanguage(l)
				}
				if err != nil {
					return internal.ErrBadRequest("unsupported language",
						internal.WithError(err),
						internal.WithErrorCode("errors.unsupported_language"),
					)
				}
			}

			ctx := prefs.WithRoot(c.Context(), root)
			ctx = prefs.WithThemeStore(ctx, theme)
			ctx = prefs.WithLanguageStore(ctx, lang)
			c.SetContext(ctx)

			return next(c)
		}
	}
}

// IsUnsupportedLanguage reports whether err rejected a language choice.
func IsUnsupportedLanguage(err error) bool {
	return errors.Is(err, prefs.ErrUnsupportedLanguage)
}
