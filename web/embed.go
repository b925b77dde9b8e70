// Package web holds the browser front-end served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// Index returns the landing page.
func Index() ([]byte, error) {
	return files.ReadFile("index.html")
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
