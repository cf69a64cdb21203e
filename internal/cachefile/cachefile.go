// Package cachefile parses CMakeCache.txt text into a variable snapshot.
//
// The format is line oriented: variable entries are NAME:TYPE=VALUE, a //
// line immediately before an entry documents it, # lines are comments, and
// real cache files carry large volumes of unrelated probe output that must
// be skipped without complaint.
package cachefile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// AdvancedSuffix marks cache entries that are implementation details.
// They are metadata, never exposed in a snapshot.
const AdvancedSuffix = "-ADVANCED"

// entryPattern matches a variable definition line. The name charset follows
// CMake: first character letter or underscore, then letters, digits and
// _-./+ characters. The type is any run excluding '='; the value is the rest
// of the line and may itself contain '=' or list separators.
var entryPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_\-./+]*):([^=]*)=(.*)$`)

// Variable is one parsed cache entry. Type and Value are opaque strings;
// the core never interprets them. Documentation is the text of the single
// // line immediately preceding the entry, or empty if there was none.
type Variable struct {
	Name          string
	Type          string
	Value         string
	Documentation string
}

// Snapshot maps variable names to entries for one build configuration.
// Built fresh per query, never persisted.
type Snapshot map[string]Variable

// Parse builds a Snapshot from raw cache text. Unparseable lines are
// skipped silently; parsing identical text always yields an equal snapshot.
func Parse(text string) Snapshot {
	snapshot := make(Snapshot)
	pendingDoc := ""

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			pendingDoc = ""
			continue

		case strings.HasPrefix(line, "//"):
			// Only the most recent doc line before an entry is kept;
			// consecutive doc lines replace, they do not concatenate.
			pendingDoc = strings.TrimSpace(line[2:])
			continue
		}

		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			pendingDoc = ""
			continue
		}

		name, varType, value := m[1], m[2], m[3]
		if strings.HasSuffix(name, AdvancedSuffix) {
			// Advanced markers are never stored and never receive docs.
			pendingDoc = ""
			continue
		}

		// Later definitions of the same name overwrite earlier ones.
		snapshot[name] = Variable{
			Name:          name,
			Type:          varType,
			Value:         value,
			Documentation: pendingDoc,
		}
		pendingDoc = ""
	}

	return snapshot
}

// Names returns all variable names in sorted order. Callers that feed the
// name matcher use this so tie-breaking is reproducible.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fingerprint returns a stable hash of the snapshot contents, used to report
// a snapshot identity in status output.
func (s Snapshot) Fingerprint() uint64 {
	h := xxhash.New()
	for _, name := range s.Names() {
		v := s[name]
		fmt.Fprintf(h, "%s:%s=%s\x00", v.Name, v.Type, v.Value)
	}
	return h.Sum64()
}
