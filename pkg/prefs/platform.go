package prefs

import (
	"context"
	"net/http"
	"strings"
)

// Platform reports the ambient colour scheme of the visitor's environment.
// ok is false when the environment has not said which scheme it prefers.
type Platform interface {
	AmbientTheme(ctx context.Context) (theme Theme, ok bool)
}

// PlatformFunc adapts a function to Platform.
type PlatformFunc func(ctx context.Context) (Theme, bool)

// AmbientTheme implements Platform.
func (f PlatformFunc) AmbientTheme(ctx context.Context) (Theme, bool) { return f(ctx) }

// StaticPlatform always reports the same theme. Values other than dark and
// light report no preference.
type StaticPlatform Theme

// AmbientTheme implements Platform.
func (p StaticPlatform) AmbientTheme(context.Context) (Theme, bool) {
	t, err := ParseTheme(string(p))
	if err != nil {
		return ThemeLight, false
	}
	return t, true
}

// Client hint headers.
const (
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"
	HeaderAcceptCH           = "Accept-CH"
	HeaderCriticalCH         = "Critical-CH"
)

// ClientHints reads the ambient theme from request client hints. Browsers
// send the hint only after seeing Accept-CH, so a missing or unrecognised
// hint reports no preference.
type ClientHints struct {
	Header http.Header
}

// AmbientTheme implements Platform.
func (c ClientHints) AmbientTheme(context.Context) (Theme, bool) {
	v := strings.Trim(strings.TrimSpace(c.Header.Get(HeaderPrefersColorScheme)), `"`)
	switch {
	case strings.EqualFold(v, string(ThemeDark)):
		return ThemeDark, true
	case strings.EqualFold(v, string(ThemeLight)):
		return ThemeLight, true
	default:
		return ThemeLight, false
	}
}

// AdvertiseClientHints asks the browser to send the colour scheme hint on
// subsequent requests, and to retry the first one with it.
func AdvertiseClientHints(h http.Header) {
	h.Add(HeaderAcceptCH, HeaderPrefersColorScheme)
	h.Add(HeaderCriticalCH, HeaderPrefersColorScheme)
	h.Add("Vary", HeaderPrefersColorScheme)
}
