// Package catalog lists the icons the palette offers and decodes the
// image an icon url points at.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/iconcanvas/assets"
)

// ErrUnknownIcon is returned by Find for ids not in the catalog.
var ErrUnknownIcon = errors.New("unknown icon")

// Icon is one palette entry.
type Icon struct {
	ID       string `yaml:"id"`
	URL      string `yaml:"url"`
	Category string `yaml:"-"`
}

// Category groups icons, optionally nested one level or more.
type Category struct {
	Name          string     `yaml:"name"`
	Icons         []Icon     `yaml:"icons"`
	Subcategories []Category `yaml:"subcategories"`
}

// Catalog is the parsed catalog file plus where its urls resolve.
type Catalog struct {
	Categories []Category `yaml:"categories"`

	embedded fs.FS
	baseDir  string
}

// Parse reads a catalog. Relative file urls resolve against baseDir.
func Parse(r io.Reader, baseDir string) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.embedded = assets.FS()
	c.baseDir = baseDir
	seen := map[string]bool{}
	for _, ic := range c.All() {
		if ic.ID == "" || ic.URL == "" {
			return nil, fmt.Errorf("catalog entry in %q needs id and url", ic.Category)
		}
		if seen[ic.ID] {
			return nil, fmt.Errorf("duplicate icon id %q", ic.ID)
		}
		seen[ic.ID] = true
	}
	return &c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	data, err := assets.Catalog()
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data), "")
}

// Load reads a catalog file from disk. An empty path yields Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, filepath.Dir(path))
}

// All flattens the catalog; Category holds the slash joined path.
func (c *Catalog) All() []Icon {
	var out []Icon
	var walk func(prefix string, cats []Category)
	walk = func(prefix string, cats []Category) {
		for _, cat := range cats {
			name := cat.Name
			if prefix != "" {
				name = prefix + "/" + cat.Name
			}
			for _, ic := range cat.Icons {
				ic.Category = name
				out = append(out, ic)
			}
			walk(name, cat.Subcategories)
		}
	}
	walk("", c.Categories)
	return out
}

// Find returns the icon with the given id.
func (c *Catalog) Find(id string) (Icon, error) {
	for _, ic := range c.All() {
		if ic.ID == id {
			return ic, nil
		}
	}
	return Icon{}, fmt.Errorf("%w: %s", ErrUnknownIcon, id)
}

// Open resolves url to its bytes. Supported forms are embed:<path>,
// file:<path> and bare paths.
func (c *Catalog) Open(url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "embed:"):
		if c.embedded == nil {
			return nil, fmt.Errorf("open %s: no embedded assets", url)
		}
		return c.embedded.Open(strings.TrimPrefix(url, "embed:"))
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("open %s: unsupported scheme", url)
	}
	p := strings.TrimPrefix(url, "file:")
	if !filepath.IsAbs(p) && c.baseDir != "" {
		p = filepath.Join(c.baseDir, p)
	}
	return os.Open(p)
}
