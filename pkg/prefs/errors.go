package prefs

import "errors"

var (
	ErrUnsupportedTheme    = errors.New("prefs: unsupported theme")
	ErrUnsupportedLanguage = errors.New("prefs: unsupported language")
	ErrNotReady            = errors.New("prefs: store is not initialized")
	ErrNotPersisted        = errors.New("prefs: value not persisted")
	ErrNoThemeStore        = errors.New("prefs: theme store used outside preferences middleware")
	ErrNoLanguageStore     = errors.New("prefs: language store used outside preferences middleware")
)
