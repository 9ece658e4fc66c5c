package contact

import "errors"

var (
	ErrSubmitFailed = errors.New("contact: submit failed")
	ErrRateLimited  = errors.New("contact: too many submissions")
	ErrNoEndpoint   = errors.New("contact: form endpoint not configured")
)
