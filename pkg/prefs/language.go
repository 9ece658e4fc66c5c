package prefs

import (
	"context"
	"sync"
)

// Translator resolves dotted keys for a language. Implementations must
// return the key unchanged when it does not resolve.
type Translator interface {
	T(lang, namespace, key string) string
}

// DefaultNamespace is the translation namespace of the site.
const DefaultNamespace = "portfolio"

// LanguageOption configures a LanguageStore.
type LanguageOption func(*LanguageStore)

// WithNamespace sets the translation namespace.
func WithNamespace(ns string) LanguageOption {
	return func(s *LanguageStore) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// LanguageStore holds the interface language of one session.
// Unlike the theme, the language is never read from durable storage: every
// session starts in DefaultLanguage.
type LanguageStore struct {
	translator Translator
	doc        Document
	gate       *Gate
	namespace  string
	lang       Language
	mu         sync.RWMutex
}

// NewLanguageStore creates an uninitialized language store.
func NewLanguageStore(translator Translator, doc Document, opts ...LanguageOption) *LanguageStore {
	s := &LanguageStore{
		translator: translator,
		doc:        doc,
		gate:       NewGate(),
		namespace:  DefaultNamespace,
		lang:       DefaultLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize sets the default language, applies its direction and opens the gate.
// Calls after the first are no-ops.
func (s *LanguageStore) Initialize(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate.IsOpen() {
		return
	}

	s.apply(DefaultLanguage)
	s.gate.Open()
}

// SetLanguage switches the language. The wrapper direction is updated before
// SetLanguage returns.
func (s *LanguageStore) SetLanguage(lang Language) error {
	if !lang.Valid() {
		return ErrUnsupportedLanguage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.IsOpen() {
		return ErrNotReady
	}

	s.apply(lang)
	return nil
}

// Language returns the current language.
func (s *LanguageStore) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Direction returns the text direction of the current language.
func (s *LanguageStore) Direction() Direction {
	return s.Language().Direction()
}

// T translates a dotted key in the current language.
func (s *LanguageStore) T(key string) string {
	return s.translator.T(string(s.Language()), s.namespace, key)
}

// Ready reports whether Initialize has completed.
func (s *LanguageStore) Ready() bool { return s.gate.IsOpen() }

// Done returns a channel closed once Initialize completes.
func (s *LanguageStore) Done() <-chan struct{} { return s.gate.Done() }

// Gate returns the store's render gate.
func (s *LanguageStore) Gate() *Gate { return s.gate }

// apply must be called with s.mu held.
func (s *LanguageStore) apply(lang Language) {
	s.lang = lang
	s.doc.SetDirection(lang.Direction())
}
