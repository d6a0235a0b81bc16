// Package assets embeds the stock icon catalog.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog.yaml icons/*.svg
var files embed.FS

// CatalogPath is the catalog file inside FS.
const CatalogPath = "catalog.yaml"

// FS exposes the embedded catalog and icons.
func FS() fs.FS {
	return files
}

// Catalog returns the raw catalog file.
func Catalog() ([]byte, error) {
	return files.ReadFile(CatalogPath)
}
