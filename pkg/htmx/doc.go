// Package htmx reads htmx request headers and writes htmx response headers.
//
// Handlers render the same templates for htmx and plain requests. The helpers
// here decide how the result reaches the browser: a partial swap with
// optional out-of-band fragments for htmx, a full page or a regular redirect
// otherwise.
//
//	if htmx.IsHTMX(r) {
//		opts := []htmx.Option{htmx.WithReswap(htmx.SwapOuterHTML), htmx.WithTrigger("contact:sent")}
//		...
//	}
//	htmx.Redirect(w, r, "/?lang=ar")
package htmx
