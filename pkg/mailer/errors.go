package mailer

import "errors"

var (
	ErrNoRecipient        = errors.New("mailer: no recipient")
	ErrTemplateNotFound   = errors.New("mailer: template not found")
	ErrLayoutNotFound     = errors.New("mailer: layout not found")
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")
	ErrRenderFailed       = errors.New("mailer: render failed")
	ErrSendFailed         = errors.New("mailer: send failed")
)
