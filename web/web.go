// Package web bundles the static pages and html templates served by the host.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed pages/*.html templates/*.tmpl
var content embed.FS

// Pages returns the bundled page resources keyed by file name.
func Pages() fs.FS {
	sub, err := fs.Sub(content, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses the bundled html templates. Each template is named after its file.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(content, "templates/*.tmpl")
}
