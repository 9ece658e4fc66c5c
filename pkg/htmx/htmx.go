package htmx

import (
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
// Boosted requests expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderBoosted) == "true"
}

// WantsPartial reports whether the response should be a fragment rather than
// a full document.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// Redirect sends htmx requests to target with HX-Redirect and a 200, and
// everything else with a 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Options collects response headers for an htmx render.
type Options struct {
	Retarget string
	Reswap   Swap
	PushURL  string
	Triggers []string
	Refresh  bool
}

// Option configures Options.
type Option func(*Options)

// NewOptions applies opts.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Apply writes the configured headers. It must run before WriteHeader.
func (o *Options) Apply(h http.Header) {
	if o == nil {
		return
	}
	if o.Retarget != "" {
		h.Set(HeaderRetarget, o.Retarget)
	}
	if o.Reswap != "" {
		h.Set(HeaderReswap, string(o.Reswap))
	}
	if o.PushURL != "" {
		h.Set(HeaderPushURL, o.PushURL)
	}
	if len(o.Triggers) > 0 {
		h.Set(HeaderTrigger, strings.Join(o.Triggers, ", "))
	}
	if o.Refresh {
		h.Set(HeaderRefresh, "true")
	}
}

func WithRetarget(selector string) Option {
	return func(o *Options) { o.Retarget = selector }
}

func WithReswap(s Swap) Option {
	return func(o *Options) { o.Reswap = s }
}

// WithPushURL updates the browser location. Pass "false" to suppress it.
func WithPushURL(url string) Option {
	return func(o *Options) { o.PushURL = url }
}

// WithTrigger fires client-side events once the response is received.
func WithTrigger(events ...string) Option {
	return func(o *Options) { o.Triggers = append(o.Triggers, events...) }
}

// WithRefresh asks htmx to reload the whole page.
func WithRefresh() Option {
	return func(o *Options) { o.Refresh = true }
}
