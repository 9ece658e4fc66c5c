// Package cache provides a small generic key-value cache with TTL support and
// two backends: an in-process map ([Memory]) and Redis ([Redis]).
//
// The site uses it for server-side preference storage keyed by an anonymous
// visitor id, for contact-form rate limiting, and for memoizing presigned
// asset URLs through [GetOrSet].
//
//	c := cache.NewMemory[string](cache.WithDefaultTTL(24 * time.Hour))
//	defer c.Close()
//
//	_ = c.Set(ctx, "visitor:123:theme", "light", 0)
//	v, err := c.Get(ctx, "visitor:123:theme")
//	if errors.Is(err, cache.ErrNotFound) {
//		// miss
//	}
//
// TTL semantics for Set are shared by both backends: a positive duration
// expires the entry after that duration, zero uses the configured default
// and a negative duration never expires.
package cache
