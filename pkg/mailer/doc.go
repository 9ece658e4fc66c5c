// Package mailer renders markdown email templates and hands them to a Sender.
//
// Templates are markdown files with optional YAML frontmatter. The body is a
// text/template executed with the caller's data, converted to HTML with
// goldmark and wrapped in an html/template layout. The executed markdown
// doubles as the plain-text alternative.
//
//	---
//	subject: New message from {{.Name}}
//	---
//	**{{.Name}}** wrote:
//
//	{{.Message}}
//
// Subjects are templates too. Resolution order is the explicit Message.Subject,
// then the frontmatter subject, then Config.FallbackSubject.
package mailer
