// Package web holds the viewer's HTML templates
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var content embed.FS

func TemplateFS() fs.FS {
	return content
}
