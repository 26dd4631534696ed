// Package webhost serves bundled pages inside a host that stands in for page dialogs,
// receives bridge messages and delivers clipboard text once per page host.
package webhost

import (
	"fmt"
	"html"
	"io/fs"
	"path"
	"strings"
)

// Bundle resolves page resources by name and extension.
type Bundle struct {
	files fs.FS
}

// NewBundle creates a bundle over the given file system.
func NewBundle(files fs.FS) *Bundle {
	return &Bundle{files: files}
}

// ResourceName joins a resource name and extension. The extension may carry a leading dot.
func ResourceName(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// SplitResource splits a file name into resource name and extension.
func SplitResource(file string) (name, ext string) {
	ext = path.Ext(file)
	return strings.TrimSuffix(file, ext), strings.TrimPrefix(ext, ".")
}

// Resolve returns the resource content. A missing resource yields the fallback page
// and false; it is never an error.
func (b *Bundle) Resolve(name, ext string) ([]byte, bool) {
	file := ResourceName(name, ext)
	if !fs.ValidPath(file) || strings.Contains(file, "/") {
		return []byte(FallbackHTML(file)), false
	}

	data, err := fs.ReadFile(b.files, file)
	if err != nil {
		return []byte(FallbackHTML(file)), false
	}
	return data, true
}

// FallbackHTML is shown in place of a missing bundled page.
func FallbackHTML(file string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Missing page</title></head>
<body style="font-family: -apple-system, system-ui, sans-serif; padding: 24px;">
<h3>Missing page</h3>
<p>%s was not found in the app bundle.</p>
</body>
</html>
`, html.EscapeString(file))
}
