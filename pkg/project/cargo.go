package project

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// cargoPackageName reads the package name from a Cargo manifest. The name is
// informational (banners, logs); an unreadable or malformed manifest does not
// invalidate the marker, so failures collapse to an empty name.
func cargoPackageName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Package.Name
}
