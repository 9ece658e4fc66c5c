package prefs_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/portfolio/pkg/prefs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingStorage struct {
	loadErr error
	saveErr error
	saves   atomic.Int32
}

func (s *failingStorage) Load(context.Context, string) (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return "", prefs.ErrNotPersisted
}

func (s *failingStorage) Save(context.Context, string, string) error {
	s.saves.Add(1)
	return s.saveErr
}

func countingPlatform(theme prefs.Theme, calls *atomic.Int32) prefs.Platform {
	return prefs.PlatformFunc(func(context.Context) (prefs.Theme, bool) {
		calls.Add(1)
		return theme, true
	})
}

func TestThemeStore_Initialize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no persisted value uses ambient dark", func(t *testing.T) {
		t.Parallel()
		storage := prefs.NewMemoryStorage(nil)
		root := prefs.NewRoot()
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeDark), root)

		require.NoError(t, s.Initialize(ctx))
		require.True(t, s.Ready())
		require.Equal(t, prefs.ThemeDark, s.Theme())
		require.True(t, root.HasClass(prefs.DarkClass))

		v, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.NoError(t, err)
		require.Equal(t, "dark", v)
	})

	t.Run("no persisted value uses ambient light", func(t *testing.T) {
		t.Parallel()
		root := prefs.NewRoot()
		s := prefs.NewThemeStore(prefs.NewMemoryStorage(nil), prefs.StaticPlatform(prefs.ThemeLight), root)

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.False(t, root.HasClass(prefs.DarkClass))
	})

	t.Run("persisted light wins over ambient dark", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		root := prefs.NewRoot()
		s := prefs.NewThemeStore(
			prefs.NewMemoryStorage(map[string]string{"theme": "light"}),
			countingPlatform(prefs.ThemeDark, &calls),
			root,
		)

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.False(t, root.HasClass(prefs.DarkClass))
		require.Zero(t, calls.Load())

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.Zero(t, calls.Load())
	})

	t.Run("invalid persisted value falls back to platform", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		s := prefs.NewThemeStore(
			prefs.NewMemoryStorage(map[string]string{"theme": "sepia"}),
			countingPlatform(prefs.ThemeDark, &calls),
			prefs.NewRoot(),
		)

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeDark, s.Theme())
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("unreadable storage falls back silently", func(t *testing.T) {
		t.Parallel()
		storage := &failingStorage{loadErr: errors.New("storage disabled")}
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeLight), prefs.NewRoot())

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.Equal(t, int32(1), storage.saves.Load())
	})

	t.Run("unknown ambient value shows light without persisting", func(t *testing.T) {
		t.Parallel()
		storage := prefs.NewMemoryStorage(nil)
		root := prefs.NewRoot()
		root.SetClass(prefs.DarkClass, true)
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform("no-preference"), root)

		require.NoError(t, s.Initialize(ctx))
		require.True(t, s.Ready())
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.False(t, root.HasClass(prefs.DarkClass))

		_, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.ErrorIs(t, err, prefs.ErrNotPersisted)
	})

	t.Run("no preference yet, then ambient dark", func(t *testing.T) {
		t.Parallel()
		storage := prefs.NewMemoryStorage(nil)
		unknown := prefs.PlatformFunc(func(context.Context) (prefs.Theme, bool) { return "", false })

		first := prefs.NewThemeStore(storage, unknown, prefs.NewRoot())
		require.NoError(t, first.Initialize(ctx))
		require.Equal(t, prefs.ThemeLight, first.Theme())

		root := prefs.NewRoot()
		second := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeDark), root)
		require.NoError(t, second.Initialize(ctx))
		require.Equal(t, prefs.ThemeDark, second.Theme())
		require.True(t, root.HasClass(prefs.DarkClass))
	})

	t.Run("toggle after unknown preference persists", func(t *testing.T) {
		t.Parallel()
		storage := prefs.NewMemoryStorage(nil)
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform("no-preference"), prefs.NewRoot())
		require.NoError(t, s.Initialize(ctx))

		next, err := s.Toggle(ctx)
		require.NoError(t, err)
		require.Equal(t, prefs.ThemeDark, next)

		v, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.NoError(t, err)
		require.Equal(t, "dark", v)
	})

	t.Run("write failure is returned but gate opens", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("quota exceeded")
		root := prefs.NewRoot()
		s := prefs.NewThemeStore(&failingStorage{saveErr: boom}, prefs.StaticPlatform(prefs.ThemeDark), root)

		require.ErrorIs(t, s.Initialize(ctx), boom)
		require.True(t, s.Ready())
		require.Equal(t, prefs.ThemeDark, s.Theme())
		require.True(t, root.HasClass(prefs.DarkClass))
	})

	t.Run("custom key and default", func(t *testing.T) {
		t.Parallel()
		storage := prefs.NewMemoryStorage(map[string]string{"ui-theme": "dark"})
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeLight), prefs.NewRoot(),
			prefs.WithThemeKey("ui-theme"),
			prefs.WithDefaultTheme(prefs.ThemeLight),
		)

		require.False(t, s.Ready())
		require.Equal(t, prefs.ThemeLight, s.Theme())

		require.NoError(t, s.Initialize(ctx))
		require.Equal(t, prefs.ThemeDark, s.Theme())
	})

	t.Run("default before initialize is dark", func(t *testing.T) {
		t.Parallel()
		s := prefs.NewThemeStore(prefs.NewMemoryStorage(nil), prefs.StaticPlatform(prefs.ThemeLight), prefs.NewRoot())
		require.False(t, s.Ready())
		require.Equal(t, prefs.ThemeDark, s.Theme())

		select {
		case <-s.Done():
			t.Fatal("gate open before Initialize")
		default:
		}
	})
}

func TestThemeStore_Toggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newStore := func(t *testing.T) (*prefs.ThemeStore, *prefs.MemoryStorage, *prefs.Root) {
		t.Helper()
		storage := prefs.NewMemoryStorage(nil)
		root := prefs.NewRoot()
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeDark), root)
		require.NoError(t, s.Initialize(ctx))
		return s, storage, root
	}

	t.Run("flips and persists", func(t *testing.T) {
		t.Parallel()
		s, storage, root := newStore(t)

		next, err := s.Toggle(ctx)
		require.NoError(t, err)
		require.Equal(t, prefs.ThemeLight, next)
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.False(t, root.HasClass(prefs.DarkClass))

		v, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.NoError(t, err)
		require.Equal(t, "light", v)
	})

	t.Run("toggling twice restores original", func(t *testing.T) {
		t.Parallel()
		s, storage, root := newStore(t)
		original := s.Theme()

		_, err := s.Toggle(ctx)
		require.NoError(t, err)
		_, err = s.Toggle(ctx)
		require.NoError(t, err)

		require.Equal(t, original, s.Theme())
		require.True(t, root.HasClass(prefs.DarkClass))
		v, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.NoError(t, err)
		require.Equal(t, string(original), v)
	})

	t.Run("before initialize", func(t *testing.T) {
		t.Parallel()
		s := prefs.NewThemeStore(prefs.NewMemoryStorage(nil), prefs.StaticPlatform(prefs.ThemeDark), prefs.NewRoot())
		_, err := s.Toggle(ctx)
		require.ErrorIs(t, err, prefs.ErrNotReady)
		require.ErrorIs(t, s.Set(ctx, prefs.ThemeLight), prefs.ErrNotReady)
	})

	t.Run("write failure propagates", func(t *testing.T) {
		t.Parallel()
		storage := &failingStorage{}
		s := prefs.NewThemeStore(storage, prefs.StaticPlatform(prefs.ThemeDark), prefs.NewRoot())
		require.NoError(t, s.Initialize(ctx))

		boom := errors.New("disk full")
		storage.saveErr = boom

		next, err := s.Toggle(ctx)
		require.ErrorIs(t, err, boom)
		require.Equal(t, prefs.ThemeLight, next)
		require.Equal(t, prefs.ThemeLight, s.Theme())
	})

	t.Run("set validates input", func(t *testing.T) {
		t.Parallel()
		s, _, root := newStore(t)

		require.ErrorIs(t, s.Set(ctx, "blue"), prefs.ErrUnsupportedTheme)
		require.Equal(t, prefs.ThemeDark, s.Theme())

		require.NoError(t, s.Set(ctx, prefs.ThemeLight))
		require.Equal(t, prefs.ThemeLight, s.Theme())
		require.False(t, root.HasClass(prefs.DarkClass))
	})

	t.Run("concurrent toggles are serialized", func(t *testing.T) {
		t.Parallel()
		s, storage, root := newStore(t)

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Toggle(ctx)
			}()
		}
		wg.Wait()

		require.Equal(t, prefs.ThemeDark, s.Theme())
		require.Equal(t, s.Theme().IsDark(), root.HasClass(prefs.DarkClass))
		v, err := storage.Load(ctx, prefs.DefaultThemeKey)
		require.NoError(t, err)
		require.Equal(t, string(s.Theme()), v)
	})
}
