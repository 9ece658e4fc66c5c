package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const formspreeEndpoint = "https://formspree.io/f/"

// Formspree submits to a hosted Formspree form.
type Formspree struct {
	url    string
	client *http.Client
}

// FormspreeOption configures Formspree.
type FormspreeOption func(*Formspree)

func WithHTTPClient(c *http.Client) FormspreeOption {
	return func(f *Formspree) {
		if c != nil {
			f.client = c
		}
	}
}

// WithEndpoint replaces the Formspree base url. The form id is appended.
func WithEndpoint(base string) FormspreeOption {
	return func(f *Formspree) { f.url = base }
}

// NewFormspree returns a submitter for formID.
func NewFormspree(formID string, opts ...FormspreeOption) (*Formspree, error) {
	if formID == "" {
		return nil, ErrNoEndpoint
	}
	f := &Formspree{url: formspreeEndpoint, client: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(f)
	}
	f.url = strings.TrimRight(f.url, "/") + "/" + formID
	return f, nil
}

type formspreeError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type formspreeResponse struct {
	OK     bool             `json:"ok"`
	Error  string           `json:"error"`
	Errors []formspreeError `json:"errors"`
}

func (f *Formspree) Submit(ctx context.Context, s Submission) (State, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	var out formspreeResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}
	if len(raw) > 0 {
		// Non-JSON bodies are judged by status alone.
		_ = json.Unmarshal(raw, &out)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return State{Succeeded: true}, nil
	case len(out.Errors) > 0 && resp.StatusCode < 500:
		st := State{Errors: make([]FieldError, 0, len(out.Errors))}
		for _, e := range out.Errors {
			st.Errors = append(st.Errors, fieldError(e))
		}
		return st, nil
	default:
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return State{}, fmt.Errorf("%w: formspree responded %d: %s", ErrSubmitFailed, resp.StatusCode, msg)
	}
}

func fieldError(e formspreeError) FieldError {
	fe := FieldError{Field: e.Field, Message: e.Message}
	switch e.Code {
	case "REQUIRED_FIELD_MISSING", "REQUIRED_FIELD_EMPTY":
		fe.Code = CodeRequired
	case "TYPE_EMAIL", "TYPE_TEXT", "TYPE_NUMERIC":
		fe.Code = CodeInvalid
	default:
		fe.Code = CodeRejected
	}
	if fe.Field == "" {
		fe.Field = FieldMessage
	}
	return fe
}
