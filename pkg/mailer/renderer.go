package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Rendered is the output of Renderer.Render.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type parsed struct {
	subject string
	body    *texttemplate.Template
}

// Renderer turns templates from an fs.FS into HTML and text bodies.
// Parsed templates and layouts are cached.
type Renderer struct {
	fsys   fs.FS
	layout string
	md     goldmark.Markdown

	mu        sync.RWMutex
	templates map[string]*parsed
	layouts   map[string]*template.Template
}

// NewRenderer reads templates from fsys. layout names the html/template file
// the converted markdown is wrapped in; it receives .Content and .Subject.
// An empty layout returns the bare HTML.
func NewRenderer(fsys fs.FS, layout string) *Renderer {
	return &Renderer{
		fsys:   fsys,
		layout: layout,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*parsed),
		layouts:   make(map[string]*template.Template),
	}
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) (*Rendered, error) {
	p, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := p.body.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	subject, err := executeString(p.subject, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s subject: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	out := &Rendered{Subject: subject, Text: text.String(), HTML: content.String()}
	if r.layout == "" {
		return out, nil
	}

	l, err := r.layoutTemplate(r.layout)
	if err != nil {
		return nil, err
	}
	var page bytes.Buffer
	if err := l.Execute(&page, map[string]any{
		"Content": template.HTML(content.String()),
		"Subject": subject,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, r.layout, err)
	}
	out.HTML = page.String()
	return out, nil
}

func (r *Renderer) template(name string) (*parsed, error) {
	r.mu.RLock()
	p, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	tpl, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	body, err := texttemplate.New(path.Base(name)).Option("missingkey=zero").Parse(tpl.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	p = &parsed{subject: tpl.Subject(), body: body}
	r.mu.Lock()
	r.templates[name] = p
	r.mu.Unlock()
	return p, nil
}

func (r *Renderer) layoutTemplate(name string) (*template.Template, error) {
	r.mu.RLock()
	l, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	l, err = template.New(path.Base(name)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = l
	r.mu.Unlock()
	return l, nil
}

func executeString(src string, data any) (string, error) {
	if src == "" {
		return "", nil
	}
	t, err := texttemplate.New("subject").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
