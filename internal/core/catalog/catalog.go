// Package catalog lists the IANA timezone identifiers a user can pick from
// and derives their display labels.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/tzc/internal/core/zone"
)

//go:embed zones.txt
var zonesTxt string

// ErrNotFound is returned when an identifier is not part of the catalog.
var ErrNotFound = errors.New("timezone not in catalog")

// Entry is one selectable timezone.
type Entry struct {
	ID    zone.ID
	Label string
}

// Catalog is an immutable, ordered set of entries.
type Catalog struct {
	entries []Entry
	index   map[zone.ID]int
}

// Label derives the human label for an identifier: the last path segment with
// underscores replaced by spaces ("America/Argentina/Buenos_Aires" -> "Buenos Aires").
func Label(id zone.ID) string {
	s := string(id)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.ReplaceAll(s, "_", " ")
}

// New builds a catalog from ids. The synthetic UTC entry is always first;
// duplicates are dropped.
func New(ids []zone.ID) *Catalog {
	c := &Catalog{index: make(map[zone.ID]int, len(ids)+1)}
	c.add(zone.UTC)
	for _, id := range ids {
		c.add(id)
	}
	return c
}

// Default returns the catalog built from the embedded zone list.
func Default() *Catalog {
	return New(embeddedIDs())
}

func (c *Catalog) add(id zone.ID) {
	if id == "" {
		return
	}
	if _, ok := c.index[id]; ok {
		return
	}
	c.index[id] = len(c.entries)
	c.entries = append(c.entries, Entry{ID: id, Label: Label(id)})
}

func embeddedIDs() []zone.ID {
	lines := strings.Split(zonesTxt, "\n")
	ids := make([]zone.ID, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, zone.ID(line))
	}
	return ids
}

// Scan walks a zoneinfo tree (e.g. os.DirFS("/usr/share/zoneinfo")) and
// returns the region identifiers it contains that Go can load.
func Scan(fsys fs.FS) ([]zone.ID, error) {
	matches, err := doublestar.Glob(fsys, "[A-Z]*/**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan zoneinfo: %w", err)
	}

	ids := make([]zone.ID, 0, len(matches))
	for _, m := range matches {
		id := zone.ID(m)
		if zone.Valid(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Filter keeps entries matching any include pattern (all entries when include
// is empty) and drops entries matching any exclude pattern. Patterns use
// doublestar syntax, e.g. "America/**".
func (c *Catalog) Filter(include, exclude []string) (*Catalog, error) {
	for _, p := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid catalog pattern %q", p)
		}
	}

	out := &Catalog{index: make(map[zone.ID]int, len(c.entries))}
	for _, e := range c.entries {
		if len(include) > 0 && !matchAny(include, e.ID) {
			continue
		}
		if matchAny(exclude, e.ID) {
			continue
		}
		out.add(e.ID)
	}
	return out, nil
}

// Glob returns the entries whose identifier matches pattern.
func (c *Catalog) Glob(pattern string) ([]Entry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var out []Entry
	for _, e := range c.entries {
		if matchAny([]string{pattern}, e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matchAny(patterns []string, id zone.ID) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, string(id)); ok {
			return true
		}
	}
	return false
}

// All returns every entry in catalog order.
func (c *Catalog) All() []Entry {
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id zone.ID) (Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id zone.ID) bool {
	_, ok := c.index[id]
	return ok
}

// LabelOf returns the catalog label for id, or the raw identifier when id is
// not in the catalog.
func (c *Catalog) LabelOf(id zone.ID) string {
	if e, ok := c.Lookup(id); ok {
		return e.Label
	}
	return string(id)
}
