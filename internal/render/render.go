// Package render turns report context fields into final report text.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/tpsops/tpsreport/internal/contract"
)

// DefaultTemplateName is the embedded Slack-style report template.
const DefaultTemplateName = "tps_report.tmpl"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// TemplateRenderer renders reports from text templates. By default it uses
// the embedded templates; a single on-disk template file can be layered on
// top, overriding an embedded template with the same base name.
type TemplateRenderer struct {
	tmpl *template.Template
}

var _ contract.Renderer = &TemplateRenderer{} // Compile-time check

// NewRenderer returns a renderer over the embedded templates.
func NewRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Option("missingkey=error").ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// NewRendererWithFile returns a renderer where the given template file is
// parsed on top of the embedded set. The file is addressed by its base name
// in Render.
func NewRendererWithFile(templateFile string) (*TemplateRenderer, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if _, err := r.tmpl.ParseFiles(templateFile); err != nil {
		return nil, fmt.Errorf("failed to parse template file %q: %w", templateFile, err)
	}
	return r, nil
}

// Render executes the named template against the field mapping.
func (r *TemplateRenderer) Render(templateName string, fields map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, templateName, fields); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", templateName, err)
	}
	return buf.String(), nil
}

// TemplateNameForFile returns the Render name for an on-disk template file.
func TemplateNameForFile(templateFile string) string {
	return filepath.Base(templateFile)
}
