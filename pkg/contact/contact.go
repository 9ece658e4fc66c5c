package contact

import (
	"context"
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Field length limits, in characters.
const (
	MaxName    = 100
	MaxEmail   = 254
	MaxMessage = 5000
)

// Error codes carried by FieldError. Views translate them.
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
	CodeTooLong  = "too_long"
	CodeRejected = "rejected"
)

// Submission is one contact form post.
type Submission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	Language   string `json:"language,omitempty"`
	RemoteAddr string `json:"-"`
}

// FieldError describes a problem with one form field. Message is set when
// the backend supplied its own wording.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// State is the form's status as shown to the visitor.
type State struct {
	Submitting bool
	Succeeded  bool
	Errors     []FieldError
}

// Error returns the first error for field, if any.
func (s State) Error(field string) (FieldError, bool) {
	for _, fe := range s.Errors {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// HasErrors reports whether any field failed.
func (s State) HasErrors() bool { return len(s.Errors) > 0 }

// Submitter delivers a submission. Field problems are reported in State;
// the error is reserved for delivery failures.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (State, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) (State, error)

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) (State, error) {
	return f(ctx, s)
}

// Normalize trims every field and strips markup. Names collapse to one line.
func Normalize(s Submission) Submission {
	s.Name = sanitizer.SingleLine(s.Name)
	s.Email = sanitizer.SingleLine(s.Email)
	s.Message = sanitizer.PlainText(s.Message)
	return s
}

// Validate checks a normalized submission.
func Validate(s Submission) State {
	var st State

	check := func(field, value string, limit int) bool {
		switch {
		case value == "":
			st.Errors = append(st.Errors, FieldError{Field: field, Code: CodeRequired})
		case utf8.RuneCountInString(value) > limit:
			st.Errors = append(st.Errors, FieldError{Field: field, Code: CodeTooLong})
		default:
			return true
		}
		return false
	}

	check(FieldName, s.Name, MaxName)
	if check(FieldEmail, s.Email, MaxEmail) && !validEmail(s.Email) {
		st.Errors = append(st.Errors, FieldError{Field: FieldEmail, Code: CodeInvalid})
	}
	check(FieldMessage, s.Message, MaxMessage)

	return st
}

// validEmail accepts a bare address only, not "Name <addr>".
func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v && addr.Name == ""
}

// Prepare normalizes and validates. Callers submit only when the returned
// state has no errors.
func Prepare(s Submission) (Submission, State) {
	s = Normalize(s)
	return s, Validate(s)
}
