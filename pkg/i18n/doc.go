// Package i18n provides an immutable, dotted-key translation table.
//
// Nested tables are flattened at construction into a single map keyed by
// language, namespace and dotted path, so every lookup is O(1). Lookups are
// total: a key that does not resolve in the requested language (or its base
// language) is returned unchanged, which keeps missing translations visible
// in rendered output. There is deliberately no fallback to another language.
//
// # Basic Usage
//
//	inst, err := i18n.New(
//		i18n.WithTranslations("en", "portfolio", map[string]any{
//			"contact": map[string]any{"send": "Send Message"},
//		}),
//		i18n.WithTranslations("ar", "portfolio", map[string]any{
//			"contact": map[string]any{"send": "إرسال الرسالة"},
//		}),
//	)
//
//	inst.T("ar", "portfolio", "contact.send")    // "إرسال الرسالة"
//	inst.T("ar", "portfolio", "contact.missing") // "contact.missing"
//
// # File-Based Translations
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	sub, _ := fs.Sub(localesFS, "locales")
//	inst, err := i18n.New(i18n.WithYAMLDir(sub))
//
// File convention: {lang}/{namespace}.yaml
//
// # Parity
//
// MissingKeys reports keys present in a reference language that another
// language does not define. Use it in tests and CLI checks to catch
// content-authoring gaps before they reach users.
package i18n
