package prefs

import (
	"context"
	"fmt"
)

type (
	themeStoreKey    struct{}
	languageStoreKey struct{}
	rootKey          struct{}
)

// WithThemeStore returns a copy of ctx carrying s.
func WithThemeStore(ctx context.Context, s *ThemeStore) context.Context {
	return context.WithValue(ctx, themeStoreKey{}, s)
}

// WithLanguageStore returns a copy of ctx carrying s.
func WithLanguageStore(ctx context.Context, s *LanguageStore) context.Context {
	return context.WithValue(ctx, languageStoreKey{}, s)
}

// LookupThemeStore returns the theme store carried by ctx, if any.
func LookupThemeStore(ctx context.Context) (*ThemeStore, bool) {
	s, ok := ctx.Value(themeStoreKey{}).(*ThemeStore)
	return s, ok && s != nil
}

// LookupLanguageStore returns the language store carried by ctx, if any.
func LookupLanguageStore(ctx context.Context) (*LanguageStore, bool) {
	s, ok := ctx.Value(languageStoreKey{}).(*LanguageStore)
	return s, ok && s != nil
}

// ThemeStoreFrom returns the theme store carried by ctx.
// It panics with an error wrapping ErrNoThemeStore when there is none:
// reaching for the store outside the preferences middleware is a wiring bug.
func ThemeStoreFrom(ctx context.Context) *ThemeStore {
	s, ok := LookupThemeStore(ctx)
	if !ok {
		panic(fmt.Errorf("%w: wrap the handler with middlewares.Preferences", ErrNoThemeStore))
	}
	return s
}

// LanguageStoreFrom returns the language store carried by ctx.
// It panics with an error wrapping ErrNoLanguageStore when there is none.
func LanguageStoreFrom(ctx context.Context) *LanguageStore {
	s, ok := LookupLanguageStore(ctx)
	if !ok {
		panic(fmt.Errorf("%w: wrap the handler with middlewares.Preferences", ErrNoLanguageStore))
	}
	return s
}

// WithRoot returns a copy of ctx carrying the document root of the response.
func WithRoot(ctx context.Context, r *Root) context.Context {
	return context.WithValue(ctx, rootKey{}, r)
}

// RootFrom returns the document root carried by ctx, or a fresh empty root
// when there is none.
func RootFrom(ctx context.Context) *Root {
	if r, ok := ctx.Value(rootKey{}).(*Root); ok && r != nil {
		return r
	}
	return NewRoot()
}
