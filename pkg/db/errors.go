package db

import "errors"

var (
	ErrNotConfigured     = errors.New("db: connection url is empty")
	ErrParseConfig       = errors.New("db: failed to parse connection url")
	ErrConnect           = errors.New("db: failed to connect")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrate           = errors.New("db: failed to apply migrations")
)
