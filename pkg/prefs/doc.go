// Package prefs holds the visitor's presentation preferences: the colour
// theme and the interface language.
//
// Both preferences live in explicit store objects created per session and
// passed down through context, never in package globals:
//
//	root := prefs.NewRoot()
//	theme := prefs.NewThemeStore(storage, prefs.ClientHints{Header: r.Header}, root)
//	lang := prefs.NewLanguageStore(translations, root)
//
//	if err := theme.Initialize(ctx); err != nil {
//		// the resolved theme could not be persisted
//	}
//	lang.Initialize(ctx)
//
//	ctx = prefs.WithThemeStore(ctx, theme)
//	ctx = prefs.WithLanguageStore(ctx, lang)
//
// # Theme
//
// The theme is resolved once from [Storage] under the "theme" key and falls
// back to the [Platform]'s ambient preference when nothing valid is stored.
// Every change, the initial one included, toggles the "dark" class on the
// [Document] root and writes the value back to storage synchronously. When
// the platform has no preference yet the store shows light and writes
// nothing.
//
// # Language
//
// The language always starts as English and is never persisted. Switching it
// recomputes the wrapper direction (rtl for Arabic) before the call returns.
//
// # Render gate
//
// Each store owns a one-shot [Gate] that opens when Initialize completes.
// [Provider] renders nothing until the gates are open so that a page is
// never painted with a stale theme or direction.
//
// # Misuse
//
// [ThemeStoreFrom] and [LanguageStoreFrom] panic when the store is missing
// from the context. Use the Lookup variants where absence is expected.
package prefs
