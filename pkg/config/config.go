// Package config loads optional rig.toml files: version constraints for
// required tools and per-project-type command template overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/project"
)

// FileName is the project-local configuration file.
const FileName = "rig.toml"

// Config is the decoded configuration. The zero value is a valid empty
// configuration.
type Config struct {
	// Tools maps a binary name to a semver range it must satisfy,
	// e.g. node = ">= 18".
	Tools map[string]string `toml:"tools"`
	// Commands maps project type to action to a replacement argv template.
	Commands map[string]map[string][]string `toml:"commands"`

	// Path is where the configuration was read from, empty when no file
	// was found.
	Path string `toml:"-"`
}

// Load resolves configuration for a dispatch against dir. An explicit path
// must exist; otherwise the project directory is tried first, then the user
// config dir, and absence is not an error.
func Load(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return decode(explicit)
	}

	local := filepath.Join(dir, FileName)
	if _, err := os.Stat(local); err == nil {
		return decode(local)
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		global := filepath.Join(userDir, "rig", FileName)
		if _, err := os.Stat(global); err == nil {
			return decode(global)
		}
	}

	return &Config{}, nil
}

func decode(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg.Path = path

	// Surface bad semver ranges at load time, not mid-dispatch.
	if _, _, err := cfg.Constraints(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &cfg, nil
}

// Overrides converts the [commands] tables into registry overrides. Unknown
// types and actions are rejected by the registry itself.
func (c *Config) Overrides() adapter.Overrides {
	if len(c.Commands) == 0 {
		return nil
	}
	overrides := make(adapter.Overrides, len(c.Commands))
	for typ, commands := range c.Commands {
		actions := make(map[adapter.Action][]string, len(commands))
		for action, argv := range commands {
			actions[adapter.Action(action)] = argv
		}
		overrides[project.Type(typ)] = actions
	}
	return overrides
}

// Constraints parses the [tools] ranges. The raw range strings are returned
// alongside so diagnostics can echo what the user wrote.
func (c *Config) Constraints() (map[string]*semver.Constraints, map[string]string, error) {
	if len(c.Tools) == 0 {
		return nil, nil, nil
	}
	parsed := make(map[string]*semver.Constraints, len(c.Tools))
	for bin, rang := range c.Tools {
		constraint, err := semver.NewConstraint(rang)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid version range %q for %s: %w", rang, bin, err)
		}
		parsed[bin] = constraint
	}
	return parsed, c.Tools, nil
}

// starter is written by `rig config init`.
const starter = `# rig configuration
#
# Minimum tool versions, checked before a toolchain is invoked.
# [tools]
# node = ">= 18"

# Command template overrides per project type. Placeholders: {file}, {bin}, {shell}.
# [commands.javascript]
# lint = ["eslint", "--max-warnings", "0", "{file}"]
`

// WriteStarter writes a commented starter file at path, refusing to clobber
// an existing one.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(starter), 0o644)
}
