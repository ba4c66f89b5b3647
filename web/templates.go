// Package web holds the HTML templates rendered by the HTTP handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded template. Names are the file base names.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
