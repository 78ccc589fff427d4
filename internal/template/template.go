// Package template renders notification content from the compiled-in
// message catalog. Messages are keyed by template key with per-locale
// variants; merge data fields are substituted with text/template.
package template

import (
	"errors"
	"fmt"
	"html"
	"strings"
	texttemplate "text/template"
)

// ErrUnknownTemplate is returned for a key not present in any locale.
// The caller treats this as a permanent failure.
var ErrUnknownTemplate = errors.New("unknown template key")

// Rendered is one produced message.
type Rendered struct {
	Subject  string
	HTMLBody string
	TextBody string
}

type message struct {
	subject *texttemplate.Template
	body    *texttemplate.Template
}

// Renderer holds the parsed message catalog.
type Renderer struct {
	locales map[string]map[string]message
}

// NewRenderer parses the message catalog. Parsing happens once at startup;
// a malformed source template is a programming error surfaced here.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{locales: make(map[string]map[string]message)}
	for locale, defs := range catalog {
		parsed := make(map[string]message, len(defs))
		for key, def := range defs {
			subj, err := texttemplate.New(key + ".subject").Parse(def.Subject)
			if err != nil {
				return nil, fmt.Errorf("parse %s/%s subject: %w", locale, key, err)
			}
			body, err := texttemplate.New(key + ".body").Parse(def.Body)
			if err != nil {
				return nil, fmt.Errorf("parse %s/%s body: %w", locale, key, err)
			}
			parsed[key] = message{subject: subj, body: body}
		}
		r.locales[locale] = parsed
	}
	return r, nil
}

// Render produces the subject, HTML body, and plain-text body for one
// template key. A locale without that key falls back to "en"; a key absent
// everywhere returns ErrUnknownTemplate.
func (r *Renderer) Render(key string, data map[string]string, locale string) (Rendered, error) {
	msg, ok := r.lookup(key, locale)
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}

	var subject, body strings.Builder
	if err := msg.subject.Execute(&subject, data); err != nil {
		return Rendered{}, fmt.Errorf("render subject %s: %w", key, err)
	}
	if err := msg.body.Execute(&body, data); err != nil {
		return Rendered{}, fmt.Errorf("render body %s: %w", key, err)
	}

	text := strings.TrimSpace(body.String())
	return Rendered{
		Subject:  strings.TrimSpace(subject.String()),
		HTMLBody: toHTML(text),
		TextBody: text,
	}, nil
}

func (r *Renderer) lookup(key, locale string) (message, bool) {
	if msgs, ok := r.locales[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg, true
		}
	}
	if locale != "en" {
		if msg, ok := r.locales["en"][key]; ok {
			return msg, true
		}
	}
	msg, ok := r.locales["en"][key]
	return msg, ok
}

// toHTML wraps plain-text paragraphs in <p> tags, escaping the content.
func toHTML(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	var b strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
