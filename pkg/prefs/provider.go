package prefs

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Provider renders children inside a wrapper whose dir attribute follows the
// language store. Until the language store and every extra gate are open it
// renders nothing at all, children included.
func Provider(lang *LanguageStore, children templ.Component, gates ...*Gate) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !lang.Ready() {
			return nil
		}
		for _, g := range gates {
			if !g.IsOpen() {
				return nil
			}
		}

		if _, err := io.WriteString(w, `<div dir="`+html.EscapeString(lang.Direction().String())+`">`); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}
