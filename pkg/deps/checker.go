// Package deps verifies that the binaries an adapter requires are resolvable
// before anything is spawned.
package deps

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/toolchest/rig/pkg/adapter"
)

// Mismatch records a binary whose reported version does not satisfy the
// configured constraint.
type Mismatch struct {
	Binary     string
	Version    string
	Constraint string
}

// MissingError aggregates every unmet requirement of an adapter. The check
// never stops at the first miss, so the caller gets the complete remediation
// list in one diagnostic.
type MissingError struct {
	Missing     []string   // binaries not on PATH
	Unsatisfied []Mismatch // binaries present but too old/new
}

func (e *MissingError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing binaries: %s", strings.Join(e.Missing, ", ")))
	}
	for _, m := range e.Unsatisfied {
		parts = append(parts, fmt.Sprintf("%s %s does not satisfy %q", m.Binary, m.Version, m.Constraint))
	}
	return strings.Join(parts, "; ")
}

// Checker resolves required binaries on the process search path and,
// optionally, enforces version constraints on them. Constraints are parsed
// and validated at configuration time.
type Checker struct {
	constraints map[string]*semver.Constraints
	rawRanges   map[string]string
}

func NewChecker(constraints map[string]*semver.Constraints, rawRanges map[string]string) *Checker {
	return &Checker{constraints: constraints, rawRanges: rawRanges}
}

// Check verifies every binary a requires. All misses and constraint
// violations are collected before failing.
func (c *Checker) Check(a adapter.Adapter) error {
	result := &MissingError{}

	for _, bin := range a.Requires {
		if _, err := exec.LookPath(bin); err != nil {
			result.Missing = append(result.Missing, bin)
			continue
		}

		constraint, ok := c.constraints[bin]
		if !ok {
			continue
		}
		version, err := parseVersion(queryToolVersion(bin))
		if err != nil {
			// A tool that hides its version is not treated as broken.
			continue
		}
		if !constraint.Check(version) {
			result.Unsatisfied = append(result.Unsatisfied, Mismatch{
				Binary:     bin,
				Version:    version.String(),
				Constraint: c.rawRanges[bin],
			})
		}
	}

	if len(result.Missing) > 0 || len(result.Unsatisfied) > 0 {
		return result
	}
	return nil
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

func parseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version token in %q", output)
	}
	return semver.NewVersion(match)
}

// queryToolVersion asks a binary for its version the conventional way. Output
// goes unparsed here; parseVersion extracts the first version-shaped token.
func queryToolVersion(bin string) string {
	out, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	return string(out)
}
