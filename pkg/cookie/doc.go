// Package cookie reads and writes HTTP cookies with optional HMAC signing.
//
// Plain cookies work without a secret. Signed cookies require a secret of at
// least 32 bytes and return [ErrNoSecret] otherwise. Use [Manager.Load] and
// [Manager.Store] when the caller should not care which mode is configured:
// they sign when a secret is present and fall back to plain values otherwise.
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//		cookie.WithSecure(true),
//	)
//
//	_ = m.Store(w, "theme", "dark", cookie.OneYear)
//	theme, err := m.Load(r, "theme")
//	if errors.Is(err, cookie.ErrNotFound) {
//		// not set yet
//	}
package cookie
