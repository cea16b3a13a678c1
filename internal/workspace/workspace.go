// Package workspace holds the shared state of a comparison: the canonical
// instant, the ordered timezone selection with the local zone pinned first,
// custom labels and the set of zones excluded from copying. Changes to the
// selection and labels are persisted through the preferences store.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/logging"
	"github.com/hay-kot/tzc/internal/core/prefs"
	"github.com/hay-kot/tzc/internal/core/row"
	"github.com/hay-kot/tzc/internal/core/timeline"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/data/stores"
	"github.com/rs/zerolog"
)

// PrefsStore loads and saves preferences. Load never fails.
type PrefsStore interface {
	Load(ctx context.Context) prefs.Data
	Save(ctx context.Context, data prefs.Data) error
}

// Options configures a Workspace.
type Options struct {
	Catalog   *catalog.Catalog
	Prefs     PrefsStore
	Converter *zone.Converter
	// Local is the viewer's zone, pinned at display index 0.
	Local zone.ID
	Now   func() time.Time
	// RestoreInstant persists the instant and restores it on load.
	RestoreInstant bool
	Logger         zerolog.Logger
}

// Workspace is the composition root state. It is not safe for concurrent use;
// the TUI drives it from its update loop.
type Workspace struct {
	catalog        *catalog.Catalog
	prefs          PrefsStore
	conv           *zone.Converter
	local          zone.ID
	now            func() time.Time
	restoreInstant bool
	log            zerolog.Logger

	instant    time.Time
	selection  []zone.ID
	labels     map[zone.ID]string
	deselected map[zone.ID]struct{}
}

// New loads the stored preferences and returns a workspace at the current
// instant, or at the stored instant when RestoreInstant is set.
func New(ctx context.Context, opts Options) *Workspace {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Converter == nil {
		opts.Converter = zone.NewConverter(false)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Local == "" {
		opts.Local = zone.UTC
	}

	w := &Workspace{
		catalog:        opts.Catalog,
		prefs:          opts.Prefs,
		conv:           opts.Converter,
		local:          opts.Local,
		now:            opts.Now,
		restoreInstant: opts.RestoreInstant,
		log:            opts.Logger,
		instant:        opts.Now().UTC(),
		deselected:     map[zone.ID]struct{}{},
	}

	data := w.prefs.Load(ctx)
	w.apply(data)
	if w.restoreInstant && data.LastBaseTime != nil {
		w.instant = data.LastBaseTime.UTC()
	}

	return w
}

// apply replaces selection and labels with data, dropping the local zone and
// duplicates from the selection.
func (w *Workspace) apply(data prefs.Data) {
	selection := make([]zone.ID, 0, len(data.SelectedTimezones))
	for _, id := range data.SelectedTimezones {
		if id == "" || id == w.local || slices.Contains(selection, id) {
			continue
		}
		selection = append(selection, id)
	}
	w.selection = selection

	w.labels = make(map[zone.ID]string, len(data.CustomLabels))
	for id, label := range data.CustomLabels {
		if label = strings.TrimSpace(label); label != "" {
			w.labels[id] = label
		}
	}

	for id := range w.deselected {
		if !w.has(id) {
			delete(w.deselected, id)
		}
	}
}

// Reload re-reads the preferences store and reports whether the selection or
// labels changed. The instant is kept.
func (w *Workspace) Reload(ctx context.Context) bool {
	data := w.prefs.Load(ctx)

	prevSel := slices.Clone(w.selection)
	prevLabels := w.labels
	w.apply(data)

	changed := !slices.Equal(prevSel, w.selection) || !maps.Equal(prevLabels, w.labels)
	if changed {
		w.log.Debug().Int("zones", len(w.selection)).Msg("preferences reloaded")
	}
	return changed
}

// Import replaces the selection and labels with data and persists them. No
// state changes when any selected identifier fails to resolve.
func (w *Workspace) Import(ctx context.Context, data prefs.Data) error {
	var errs []error
	for _, id := range data.SelectedTimezones {
		if !zone.Valid(id) {
			errs = append(errs, fmt.Errorf("%w: %q", zone.ErrUnknownZone, id))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	w.apply(data)
	if w.restoreInstant && data.LastBaseTime != nil {
		w.instant = data.LastBaseTime.UTC()
	}
	return w.prefs.Save(ctx, w.Data())
}

// Local returns the viewer's zone.
func (w *Workspace) Local() zone.ID {
	return w.local
}

// Catalog returns the catalog zones are added from.
func (w *Workspace) Catalog() *catalog.Catalog {
	return w.catalog
}

// Converter returns the converter used to build rows.
func (w *Workspace) Converter() *zone.Converter {
	return w.conv
}

// Instant returns the canonical instant in UTC.
func (w *Workspace) Instant() time.Time {
	return w.instant
}

// Zones returns the display list: the local zone followed by the selection.
func (w *Workspace) Zones() []zone.ID {
	out := make([]zone.ID, 0, len(w.selection)+1)
	out = append(out, w.local)
	for _, id := range w.selection {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (w *Workspace) has(id zone.ID) bool {
	return id == w.local || slices.Contains(w.selection, id)
}

// Add appends id to the selection. Adding a zone that is already displayed is
// a no-op; ids outside the catalog are rejected.
func (w *Workspace) Add(ctx context.Context, id zone.ID) error {
	if w.has(id) {
		return nil
	}
	if !w.catalog.Contains(id) {
		return fmt.Errorf("add %q: %w", id, catalog.ErrNotFound)
	}

	ctx = logging.WithZone(ctx, string(id))
	w.selection = append(w.selection, id)
	w.log.Debug().Ctx(ctx).Msg("zone added")
	w.save(ctx)
	return nil
}

// Remove drops id, its custom label and its copy deselection. Removing the
// local zone is a no-op.
func (w *Workspace) Remove(ctx context.Context, id zone.ID) {
	if id == w.local || !slices.Contains(w.selection, id) {
		return
	}

	w.selection = slices.DeleteFunc(w.selection, func(s zone.ID) bool { return s == id })
	delete(w.labels, id)
	delete(w.deselected, id)
	ctx = logging.WithZone(ctx, string(id))
	w.log.Debug().Ctx(ctx).Msg("zone removed")
	w.save(ctx)
}

// Reorder moves the zone at display index from to display index to. Moves
// touching index 0 or outside the list are ignored.
func (w *Workspace) Reorder(ctx context.Context, from, to int) {
	zones := w.Zones()
	if from <= 0 || to <= 0 || from >= len(zones) || to >= len(zones) || from == to {
		return
	}

	moved := timeline.Apply(zones, timeline.Move{From: from, To: to})
	w.selection = moved[1:]
	w.save(ctx)
}

// SetLabel sets the custom label for a displayed zone. A label that is empty
// after trimming clears it.
func (w *Workspace) SetLabel(ctx context.Context, id zone.ID, label string) {
	if !w.has(id) {
		return
	}

	label = strings.TrimSpace(label)
	if label == "" {
		delete(w.labels, id)
	} else {
		w.labels[id] = label
	}
	w.save(ctx)
}

// CustomLabel returns the custom label for id, or "" when none is set.
func (w *Workspace) CustomLabel(id zone.ID) string {
	return w.labels[id]
}

// Label returns the custom label for id, falling back to the catalog label.
func (w *Workspace) Label(id zone.ID) string {
	if l, ok := w.labels[id]; ok {
		return l
	}
	return defaultLabel(w.catalog, id)
}

func defaultLabel(c *catalog.Catalog, id zone.ID) string {
	if e, ok := c.Lookup(id); ok {
		return e.Label
	}
	return catalog.Label(id)
}

// SetInstant replaces the canonical instant. The instant is only persisted
// when RestoreInstant is set.
func (w *Workspace) SetInstant(ctx context.Context, t time.Time) {
	w.instant = t.UTC()
	if w.restoreInstant {
		w.save(ctx)
	}
}

// At moves the instant without persisting it, for one-off renders.
func (w *Workspace) At(t time.Time) {
	w.instant = t.UTC()
}

// ResetNow sets the instant to the current time.
func (w *Workspace) ResetNow(ctx context.Context) {
	w.SetInstant(ctx, w.now())
}

// SetInstantInput parses a base-time entry as wall-clock time in the local
// zone. Invalid input is discarded and reported as false.
func (w *Workspace) SetInstantInput(ctx context.Context, value string) bool {
	loc, err := w.conv.Location(w.local)
	if err != nil {
		loc = time.UTC
	}

	t, err := zone.ParseInput(strings.TrimSpace(value), loc)
	if err != nil {
		w.log.Debug().Err(err).Msg("base time input discarded")
		return false
	}

	w.SetInstant(ctx, t)
	return true
}

// InstantInput renders the instant for the base-time entry field.
func (w *Workspace) InstantInput() string {
	v, err := w.conv.ToZoned(w.instant, w.local)
	if err != nil {
		v, _ = zone.ToZoned(w.instant, zone.UTC)
	}
	return zone.FormatInput(v)
}

// ToggleCopy flips whether id is included in copied text.
func (w *Workspace) ToggleCopy(id zone.ID) {
	if _, ok := w.deselected[id]; ok {
		delete(w.deselected, id)
		return
	}
	w.deselected[id] = struct{}{}
}

// Selected reports whether id is included in copied text. Zones are selected
// unless explicitly deselected.
func (w *Workspace) Selected(id zone.ID) bool {
	_, ok := w.deselected[id]
	return !ok
}

// SelectedCount returns the number of displayed zones included in copies.
func (w *Workspace) SelectedCount() int {
	n := 0
	for _, id := range w.Zones() {
		if w.Selected(id) {
			n++
		}
	}
	return n
}

// CopyText renders one "Label: MM/DD HH:MM" line per selected zone in display
// order. Zones that cannot be resolved are skipped.
func (w *Workspace) CopyText() string {
	var lines []string
	for _, id := range w.Zones() {
		if !w.Selected(id) {
			continue
		}
		v, err := w.conv.ToZoned(w.instant, id)
		if err != nil {
			w.log.Warn().Err(err).Str("zone", string(id)).Msg("skipping zone in copy")
			continue
		}
		lines = append(lines, zone.FormatCopyLine(w.Label(id), v))
	}
	return strings.Join(lines, "\n")
}

// Rows builds the presentation of every displayed zone.
func (w *Workspace) Rows() []row.Row {
	zones := w.Zones()
	rows := make([]row.Row, 0, len(zones))
	for _, id := range zones {
		r := row.Build(w.conv, row.Input{
			ID:           id,
			Instant:      w.instant,
			DefaultLabel: defaultLabel(w.catalog, id),
			CustomLabel:  w.labels[id],
			Local:        id == w.local,
			Selected:     w.Selected(id),
		})
		if r.Err != nil {
			w.log.Error().Err(r.Err).Str("zone", string(id)).Msg("cannot resolve zone")
		}
		rows = append(rows, r)
	}
	return rows
}

// Data returns the document persisted for the current state.
func (w *Workspace) Data() prefs.Data {
	data := prefs.Data{
		SelectedTimezones: slices.Clone(w.selection),
		CustomLabels:      maps.Clone(w.labels),
	}
	if w.restoreInstant {
		t := w.instant
		data.LastBaseTime = &t
	}
	return data
}

func (w *Workspace) save(ctx context.Context) {
	err := w.prefs.Save(ctx, w.Data())
	switch {
	case err == nil:
	case stores.IsBusyError(err):
		// Another tzc holds the write lock; the next change saves the full state again.
		w.log.Warn().Ctx(ctx).Err(err).Msg("database busy, preferences not saved")
	default:
		w.log.Error().Ctx(ctx).Err(err).Msg("failed to save preferences")
	}
}
