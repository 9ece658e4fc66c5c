package internal

// ContextValue returns the value stored under key, or the zero value when it
// is missing or of another type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}
