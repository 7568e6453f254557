package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

// Templates parses the pages served by the transport layer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.html")
}
