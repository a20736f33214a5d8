package main

import (
	"embed"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var descriptionPolicy = bluemonday.UGCPolicy()

// mustParseTemplates loads every page template with the helper funcs; numbers in the
// statistics panel are printed for the given locale.
func mustParseTemplates(locale string) *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs(locale)).ParseFS(templateFS, "templates/*.gohtml"))
}

func templateFuncs(locale string) template.FuncMap {
	printer := message.NewPrinter(language.Make(locale))

	return template.FuncMap{
		// mean ratio as a percentage with one decimal
		"pct": func(v float64) string {
			return printer.Sprintf("%.1f%%", v*100)
		},
		"count": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"markdown": markdownToHTML,
	}
}

func markdownToHTML(md string) template.HTML {
	unsafe := markdown.ToHTML([]byte(md), nil, nil)
	return template.HTML(descriptionPolicy.SanitizeBytes(unsafe))
}
