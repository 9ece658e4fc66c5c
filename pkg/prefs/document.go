package prefs

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Document receives the presentation side effects of the stores.
type Document interface {
	// SetClass adds or removes a class on the document root.
	SetClass(name string, present bool)
	// SetDirection sets the direction of the top-level wrapper.
	SetDirection(dir Direction)
}

// DarkClass is the root class marking the dark theme.
const DarkClass = "dark"

// Root records document side effects for a single rendered response.
type Root struct {
	classes map[string]struct{}
	dir     Direction
	mu      sync.RWMutex
}

// NewRoot returns a Root with no classes and ltr direction.
func NewRoot() *Root {
	return &Root{
		classes: make(map[string]struct{}),
		dir:     LTR,
	}
}

// SetClass implements Document.
func (r *Root) SetClass(name string, present bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if present {
		r.classes[name] = struct{}{}
	} else {
		delete(r.classes, name)
	}
}

// SetDirection implements Document.
func (r *Root) SetDirection(dir Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = dir
}

// HasClass reports whether the root carries the class.
func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Class returns the root class attribute value, classes sorted.
func (r *Root) Class() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.Join(slices.Sorted(maps.Keys(r.classes)), " ")
}

// Direction returns the wrapper direction.
func (r *Root) Direction() Direction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dir
}

var _ Document = (*Root)(nil)
