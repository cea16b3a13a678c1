package catalog

import (
	"strings"
	"unicode"

	"github.com/hay-kot/tzc/internal/core/zone"
)

// MaxResults caps the number of entries a search displays.
const MaxResults = 10

// Result is one page of search matches. More counts the matches that did not
// fit into Entries.
type Result struct {
	Entries []Entry
	More    int
}

// Total returns the number of matches including the overflow.
func (r Result) Total() int {
	return len(r.Entries) + r.More
}

// Search matches query case-insensitively by prefix against the normalised
// identifier and the normalised label. Identifiers in exclude (usually the
// current selection) are skipped. An empty query matches everything.
func (c *Catalog) Search(query string, exclude []zone.ID) Result {
	var res Result
	for _, e := range c.Matches(query, exclude) {
		if len(res.Entries) < MaxResults {
			res.Entries = append(res.Entries, e)
		} else {
			res.More++
		}
	}
	return res
}

// Matches is Search without the result cap.
func (c *Catalog) Matches(query string, exclude []zone.ID) []Entry {
	q := stripSpace(strings.ToLower(strings.TrimSpace(query)))

	skip := make(map[zone.ID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	var out []Entry
	for _, e := range c.entries {
		if _, ok := skip[e.ID]; ok {
			continue
		}
		if q != "" && !matches(e, q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e Entry, q string) bool {
	return strings.HasPrefix(normalizeID(e.ID), q) ||
		strings.HasPrefix(stripSpace(strings.ToLower(e.Label)), q)
}

func normalizeID(id zone.ID) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == '-' || r == '/' {
			return -1
		}
		return r
	}, strings.ToLower(string(id)))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
