// Package templates holds the server-rendered commonplace pages.
package templates

import (
	"embed"
	"html/template"
	"io"
	texttemplate "text/template"
)

const (
	Index         = "index.html"
	IframeInstall = "iframe-install.html"
	Potatolytics  = "potatolytics.html"
)

//go:embed html/*.html
var pagesFS embed.FS

//go:embed manifest.appcache
var manifestText string

var (
	pages    = template.Must(template.ParseFS(pagesFS, "html/*.html"))
	manifest = texttemplate.Must(texttemplate.New("manifest.appcache").Parse(manifestText))
)

// Render executes the named page template.
func Render(w io.Writer, name string, data any) error {
	return pages.ExecuteTemplate(w, name, data)
}

// RenderManifest writes an appcache manifest. Its output is not HTML escaped.
func RenderManifest(w io.Writer, data any) error {
	return manifest.Execute(w, data)
}
