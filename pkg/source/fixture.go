package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	xerrors "github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/graph"
	"github.com/matzehuels/depscope/pkg/manifest"
)

// PlaceholderSpec is the synthetic version spec assigned to fixture
// dependencies, which carry no version information.
const PlaceholderSpec = "*"

// FixtureSource serves dependency records from a flat adjacency-list file
// loaded once at construction. Each non-empty, non-comment line is
// "PACKAGE [DEP1,DEP2,...]"; '#' starts a comment line.
//
// Packages the file never mentions resolve to an empty record rather than an
// error: the fixture describes a closed world, and an unlisted name is a
// leaf by definition.
type FixtureSource struct {
	adjacency map[string][]string
}

// NewFixtureSource loads the fixture at path. A missing file is a
// FIXTURE_NOT_FOUND error and any other read failure is FIXTURE_READ_ERROR;
// both are fatal, since the traversal cannot begin without the fixture.
func NewFixtureSource(path string) (*FixtureSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.New(xerrors.ErrCodeFixtureNotFound, "fixture file not found: %s", path)
		}
		return nil, xerrors.Wrap(xerrors.ErrCodeFixtureRead, err, "read fixture %s", path)
	}
	defer f.Close()

	adjacency, err := ParseFixture(f)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeFixtureRead, err, "parse fixture %s", path)
	}
	return &FixtureSource{adjacency: adjacency}, nil
}

// Fetch returns the adjacency row for pkg with placeholder version specs.
// The ref is ignored: fixtures are versionless.
func (s *FixtureSource) Fetch(_ context.Context, pkg, _ string) (manifest.Record, error) {
	record := manifest.Record{}
	for _, dep := range s.adjacency[pkg] {
		record[dep] = PlaceholderSpec
	}
	return record, nil
}

// ParseFixture reads adjacency lines from r. Blank lines and lines starting
// with '#' are skipped. The package name is separated from its
// comma-separated dependency list by spaces or tabs.
func ParseFixture(r io.Reader) (map[string][]string, error) {
	adjacency := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		name := fields[0]
		var deps []string
		if len(fields) > 1 {
			for dep := range strings.SplitSeq(strings.Join(fields[1:], ""), ",") {
				if dep = strings.TrimSpace(dep); dep != "" {
					deps = append(deps, dep)
				}
			}
		}
		adjacency[name] = deps
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return adjacency, nil
}

// WriteFixture writes a graph in the fixture format, one "NAME DEP1,DEP2"
// line per expanded package, sorted by name. Reading the output back yields
// the same adjacency sets.
func WriteFixture(g graph.Graph, w io.Writer) error {
	for _, pkg := range g.Packages() {
		deps := g[pkg].Names()
		if len(deps) == 0 {
			if _, err := fmt.Fprintln(w, pkg); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", pkg, strings.Join(deps, ",")); err != nil {
			return err
		}
	}
	return nil
}

// WriteFixtureFile writes a graph in the fixture format to path.
func WriteFixtureFile(g graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeFixtureRead, err, "create fixture %s", path)
	}
	defer f.Close()
	return WriteFixture(g, f)
}
