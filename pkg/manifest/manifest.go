// Package manifest extracts dependency declarations from Cargo.toml text.
//
// The parser is deliberately lenient: manifest dialects vary in the wild, and
// a parse miss should cost a missing edge rather than abort a traversal. It is
// a line-scanning state machine (inside/outside the [dependencies] section)
// instead of a full TOML grammar. Inline tables are reduced to their version
// field when one can be isolated; otherwise the table text is kept verbatim
// as the dependency spec.
package manifest

import (
	"bufio"
	"regexp"
	"slices"
	"strings"
)

// DependenciesSection is the manifest section header that opens the
// dependency declarations. Any other section header closes it.
const DependenciesSection = "[dependencies]"

// commentMarker prefixes comment lines, which are skipped wholesale.
const commentMarker = "#"

// Record maps a dependency name to its version-spec string. The spec is
// opaque text: a quoted version requirement, or the verbatim inline-table
// text when no version field could be isolated. Duplicate keys in a
// malformed manifest resolve last-occurrence-wins.
type Record map[string]string

// Names returns the dependency names in sorted order for deterministic
// iteration.
func (r Record) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var (
	// NAME = VALUE within the dependency section. Names follow crates.io
	// conventions (alphanumerics, dash, underscore, dot).
	depLineRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_.-]*)\s*=\s*(.+)$`)

	// version = "..." inside an inline table.
	tableVersionRe = regexp.MustCompile(`version\s*=\s*"([^"]*)"`)
)

// Parse scans raw manifest text and returns the declared dependencies.
//
// It never fails: malformed input degrades to an empty (or partial) record.
// Only the [dependencies] section is considered; dev-dependencies,
// build-dependencies, and every other section are excluded.
func Parse(raw string) Record {
	record := Record{}
	inDeps := false

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		if strings.HasPrefix(line, "[") {
			inDeps = line == DependenciesSection
			continue
		}
		if !inDeps {
			continue
		}

		m := depLineRe.FindStringSubmatch(line)
		if m == nil {
			continue // not a NAME = VALUE declaration, ignore
		}
		record[m[1]] = parseSpec(m[2])
	}

	return record
}

// parseSpec reduces the right-hand side of a dependency declaration to a
// version-spec string.
func parseSpec(value string) string {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "{") {
		if m := tableVersionRe.FindStringSubmatch(value); m != nil {
			return m[1]
		}
		return value // no isolatable version field, keep the table verbatim
	}

	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}

	return value
}
