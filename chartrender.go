package main

import (
	"html/template"
	"strings"

	chartrender "github.com/go-echarts/go-echarts/v2/render"
)

const scriptOpenTag = `<script type="text/javascript">`

// renderToHtml turns a go-echarts chart into an element plus inline script, and returns the
// asset URLs the page must load first.
func renderToHtml(deps *Dependencies, c chartrender.Renderer, assets func() []string) (template.HTML, []string) {
	snippet := c.RenderSnippet()

	// crazy hack to get nonce into scripts
	script := strings.Replace(snippet.Script, scriptOpenTag, `<script type="text/javascript" nonce="`+deps.nonce+`">`, 1)

	return template.HTML(snippet.Element + "\n" + script), assets()
}
