package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderReport renders a report table to markdown.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title": "report_title.md",
		"report_table": "report_table.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderCurve renders the summary of a cumulative return curve to markdown.
func RenderCurve(c *Curve) string {
	partials := map[string]string{
		"curve_title": "curve_title.md",
		// Curve rows are a plain table, like reports.
		"curve_table": "report_table.md",
		"curve_empty": "message.md",
	}
	return renderTemplate("curve", "curve.md", partials, c)
}

// RenderMessage renders a user facing state, like an empty selection.
func RenderMessage(msg string) string {
	return renderTemplate("message", "message.md", nil, msg)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
