package prefs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// DefaultThemeKey is the storage key of the persisted theme.
const DefaultThemeKey = "theme"

// ThemeOption configures a ThemeStore.
type ThemeOption func(*ThemeStore)

// WithThemeKey sets the storage key. Empty keys are ignored.
func WithThemeKey(key string) ThemeOption {
	return func(s *ThemeStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDefaultTheme sets the value reported before Initialize resolves.
func WithDefaultTheme(t Theme) ThemeOption {
	return func(s *ThemeStore) {
		if t == ThemeDark || t == ThemeLight {
			s.theme = t
		}
	}
}

// WithThemeLogger sets the logger used for storage diagnostics.
func WithThemeLogger(l *slog.Logger) ThemeOption {
	return func(s *ThemeStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// ThemeStore holds the theme preference of one session.
//
// Every change, including a value resolved by Initialize, is mirrored to
// the document root class and written to storage before the call returns.
// A light fallback chosen for lack of any preference is not written.
type ThemeStore struct {
	storage  Storage
	platform Platform
	doc      Document
	logger   *slog.Logger
	gate     *Gate
	key      string
	theme    Theme
	mu       sync.RWMutex
}

// NewThemeStore creates an uninitialized theme store.
func NewThemeStore(storage Storage, platform Platform, doc Document, opts ...ThemeOption) *ThemeStore {
	s := &ThemeStore{
		storage:  storage,
		platform: platform,
		doc:      doc,
		logger:   logger.NewNope(),
		gate:     NewGate(),
		key:      DefaultThemeKey,
		theme:    ThemeDark,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize resolves the theme from storage, falling back to the platform's
// ambient preference when nothing valid is persisted. Read failures are not
// surfaced. The resolved value is applied to the document and written back
// to storage, then the gate opens. Calls after the first are no-ops.
//
// When the platform has no preference either, the store shows light without
// persisting it, so a later request that carries the preference still wins.
//
// A failure to write the resolved value is returned; the gate still opens
// so the session stays usable with the in-memory value.
func (s *ThemeStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate.IsOpen() {
		return nil
	}

	var err error
	if theme, ok := s.resolve(ctx); ok {
		err = s.apply(ctx, theme)
	} else {
		s.show(ThemeLight)
	}
	s.gate.Open()
	return err
}

// Toggle flips the theme and applies it. It returns the new theme and the
// storage write error, if any. The in-memory value changes either way.
func (s *ThemeStore) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.IsOpen() {
		return s.theme, ErrNotReady
	}

	next := s.theme.Toggle()
	return next, s.apply(ctx, next)
}

// Set assigns the theme and applies it.
func (s *ThemeStore) Set(ctx context.Context, t Theme) error {
	if t != ThemeDark && t != ThemeLight {
		return ErrUnsupportedTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.IsOpen() {
		return ErrNotReady
	}

	return s.apply(ctx, t)
}

// Theme returns the current theme. Before the gate opens it is the default.
func (s *ThemeStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Ready reports whether Initialize has completed.
func (s *ThemeStore) Ready() bool { return s.gate.IsOpen() }

// Done returns a channel closed once Initialize completes.
func (s *ThemeStore) Done() <-chan struct{} { return s.gate.Done() }

// Gate returns the store's render gate.
func (s *ThemeStore) Gate() *Gate { return s.gate }

// persisted must be called with s.mu held.
func (s *ThemeStore) persisted(ctx context.Context) (Theme, bool) {
	raw, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotPersisted) {
			s.logger.DebugContext(ctx, "theme storage unavailable", slog.String("key", s.key), slog.Any("error", err))
		}
		return "", false
	}

	theme, err := ParseTheme(raw)
	if err != nil {
		s.logger.DebugContext(ctx, "ignoring persisted theme", slog.String("value", raw))
		return "", false
	}
	return theme, true
}

// resolve must be called with s.mu held. ok is false when neither storage
// nor the platform knows the theme.
func (s *ThemeStore) resolve(ctx context.Context) (Theme, bool) {
	if theme, ok := s.persisted(ctx); ok {
		return theme, true
	}
	theme, ok := s.platform.AmbientTheme(ctx)
	if !ok || (theme != ThemeDark && theme != ThemeLight) {
		return ThemeLight, false
	}
	return theme, true
}

// apply must be called with s.mu held.
func (s *ThemeStore) apply(ctx context.Context, t Theme) error {
	s.show(t)
	return s.storage.Save(ctx, s.key, string(t))
}

// show must be called with s.mu held.
func (s *ThemeStore) show(t Theme) {
	s.theme = t
	s.doc.SetClass(DarkClass, t.IsDark())
}
