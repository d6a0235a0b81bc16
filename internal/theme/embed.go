package theme

import "embed"

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Names lists the embedded theme names without extension.
func Names() []string {
	entries, err := EmbeddedThemes.ReadDir("defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if len(n) > len(".theme") {
			names = append(names, n[:len(n)-len(".theme")])
		}
	}
	return names
}
