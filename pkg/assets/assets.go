package assets

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
)

var (
	ErrNotFound      = errors.New("assets: not found")
	ErrAccessDenied  = errors.New("assets: access denied")
	ErrPresignFailed = errors.New("assets: presign failed")
	ErrUnavailable   = errors.New("assets: storage unavailable")
	ErrInvalidName   = errors.New("assets: invalid name")
	ErrInvalidConfig = errors.New("assets: invalid configuration")
)

// Resolver maps an asset name to a URL a browser can fetch.
type Resolver interface {
	URL(ctx context.Context, name string) (string, error)
}

// Local resolves names under Prefix. When FS is set, names missing from it
// are reported as ErrNotFound.
type Local struct {
	Prefix string
	FS     fs.FS
}

func (l Local) URL(_ context.Context, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if l.FS != nil {
		if _, err := fs.Stat(l.FS, clean); err != nil {
			return "", errors.Join(ErrNotFound, err)
		}
	}
	prefix := l.Prefix
	if prefix == "" {
		prefix = "/assets"
	}
	return strings.TrimRight(prefix, "/") + "/" + clean, nil
}

// cleanName rejects names that escape the asset root.
func cleanName(name string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(name))[1:]
	if clean == "" || !fs.ValidPath(clean) || clean != strings.TrimPrefix(strings.TrimSpace(name), "/") {
		return "", ErrInvalidName
	}
	return clean, nil
}
