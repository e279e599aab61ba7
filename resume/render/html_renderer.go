package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-generator/resume/model"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

const htmlTemplateName = "resume.html.tmpl"

// HTMLContentType is the media type of rendered documents.
const HTMLContentType = "text/html; charset=utf-8"

// HTMLRenderer renders generated content into a self-contained HTML document.
// All interpolated text goes through html/template's contextual escaping.
type HTMLRenderer struct {
	tmpl *template.Template
}

type htmlView struct {
	Name       string
	Structured *model.StructuredContent
	Freeform   *model.FreeformContent
}

// NewHTMLRenderer parses the embedded resume template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New(htmlTemplateName).
		Funcs(template.FuncMap{
			"na":       model.OrPlaceholder,
			"nonblank": func(s string) bool { return strings.TrimSpace(s) != "" },
		}).
		ParseFS(templateFS, "templates/"+htmlTemplateName)
	if err != nil {
		return nil, fmt.Errorf("parse resume template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the document for content and the candidate name. It has no
// side effects and returns identical output for identical input.
func (r *HTMLRenderer) Render(content model.GeneratedContent, name string) (string, error) {
	view := htmlView{Name: model.OrPlaceholder(name)}
	switch c := content.(type) {
	case model.StructuredContent:
		view.Structured = &c
	case *model.StructuredContent:
		if c == nil {
			return "", fmt.Errorf("render: nil structured content")
		}
		view.Structured = c
	case model.FreeformContent:
		view.Freeform = &c
	case *model.FreeformContent:
		if c == nil {
			return "", fmt.Errorf("render: nil freeform content")
		}
		view.Freeform = c
	default:
		return "", fmt.Errorf("render: unsupported content type %T", content)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, htmlTemplateName, view); err != nil {
		return "", fmt.Errorf("render resume html: %w", err)
	}
	return buf.String(), nil
}
