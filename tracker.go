package pageselect

import (
	"maps"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// RowSelectionSetter pushes a page-local selection model down to the table.
type RowSelectionSetter func(RowSelection)

// Tracker keeps the selection of a paginated table across pages.
//
// T is the row type reported by the table, ID the stable identifier of the
// entity a row shows. The tracker owns two models, GlobalSelection and the
// RowSelection of the current page, and keeps them consistent: every selected
// global position inside the current page has its page-relative index
// selected, and vice versa.
//
// A Tracker is driven by two events. Call ReconcileFromPageModel when the
// table reports a new row selection and SetPagination when the page, page size
// or total changes. Each call performs exactly one recomputation.
//
// A Tracker is not safe for concurrent use.
type Tracker[T any, ID comparable] struct {
	getID  func(T) ID
	push   RowSelectionSetter
	info   PageInfo
	global GlobalSelection[ID]
	page   RowSelection
	logger *zap.Logger
}

// NewTracker returns a Tracker with empty selection. push may be nil when the
// caller reads PageSelection itself.
func NewTracker[T any, ID comparable](getID func(T) ID, push RowSelectionSetter, info PageInfo) *Tracker[T, ID] {
	return &Tracker[T, ID]{
		getID:  getID,
		push:   push,
		info:   info,
		global: GlobalSelection[ID]{},
		page:   RowSelection{},
		logger: zap.NewNop(),
	}
}

func (t *Tracker[T, ID]) WithLogger(logger *zap.Logger) *Tracker[T, ID] {
	t.logger = lo.Ternary(logger != nil, logger, zap.NewNop())
	return t
}

// ReconcileFromPageModel folds the row selection reported by the table into
// the global selection. model maps page-relative indices to the selected rows.
//
// Positions of the current page that are no longer selected are dropped,
// selected ones are stored with the row's identifier. Positions outside the
// current page are left untouched.
func (t *Tracker[T, ID]) ReconcileFromPageModel(model map[int]T) {
	pageSelection := make(GlobalSelection[ID], len(model))
	rowSelection := make(RowSelection, len(model))

	for index, row := range model {
		position, ok := t.info.GlobalPosition(index)
		if !ok {
			t.logger.Debug("Ignoring row outside of page",
				zap.Int("index", index),
				zap.Int("pageSize", t.info.PageSize))
			continue
		}

		pageSelection[position] = Resolved(t.getID(row))
		rowSelection[index] = true
	}

	for position := range t.global {
		if t.info.Contains(position) {
			if _, ok := pageSelection[position]; !ok {
				delete(t.global, position)
			}
		}
	}
	maps.Copy(t.global, pageSelection)
	t.page = rowSelection

	t.logger.Debug("Reconciled page selection",
		zap.Int("page", t.info.Page),
		zap.Int("pageSelected", len(rowSelection)),
		zap.Int("selected", len(t.global)))
}

// SetPagination replaces the pagination state and recomputes the row
// selection of the new page.
func (t *Tracker[T, ID]) SetPagination(info PageInfo) {
	t.info = info
	t.RecomputePageLocalFromGlobal()
}

// RecomputePageLocalFromGlobal derives the row selection of the current page
// from the global selection and pushes it to the table.
func (t *Tracker[T, ID]) RecomputePageLocalFromGlobal() RowSelection {
	rowSelection := RowSelection{}
	for position := range t.global {
		if index, ok := t.info.RelativeIndex(position); ok {
			rowSelection[index] = true
		}
	}

	t.logger.Debug("Recomputed page selection",
		zap.Int("page", t.info.Page),
		zap.Int("pageSize", t.info.PageSize),
		zap.Int("pageSelected", len(rowSelection)))

	t.setPage(rowSelection)

	return maps.Clone(rowSelection)
}

// SelectAll selects every row of the result set, not only the visible page.
//
// Identifiers of rows on other pages are not known to the tracker, so every
// position 0..TotalItems-1 is stored as a placeholder. Placeholders can be
// turned into identifiers with Resolve or a Resolver.
func (t *Tracker[T, ID]) SelectAll() {
	t.global = NewPlaceholderSelection[ID](t.info.TotalItems)
	t.setPage(NewRowSelection(t.info.VisibleItems()))

	t.logger.Debug("Selected all rows", zap.Int("total", t.info.TotalItems))
}

// Clear drops the whole selection.
func (t *Tracker[T, ID]) Clear() {
	t.global = GlobalSelection[ID]{}
	t.setPage(RowSelection{})
}

// Resolve fills placeholders left by SelectAll with identifiers. Positions
// that are not selected or already carry an identifier are skipped: an
// identifier reported by the table wins over one read later. Returns the
// number of filled placeholders.
func (t *Tracker[T, ID]) Resolve(ids map[int]ID) int {
	resolved := 0
	for position, id := range ids {
		if entry, ok := t.global[position]; !ok || entry.Resolved {
			continue
		}

		t.global[position] = Resolved(id)
		resolved++
	}

	return resolved
}

// Selection returns a copy of the global selection.
func (t *Tracker[T, ID]) Selection() GlobalSelection[ID] {
	return t.global.Clone()
}

// PageSelection returns a copy of the row selection of the current page.
func (t *Tracker[T, ID]) PageSelection() RowSelection {
	return maps.Clone(t.page)
}

func (t *Tracker[T, ID]) Pagination() PageInfo {
	return t.info
}

// Len returns the number of selected positions, placeholders included.
func (t *Tracker[T, ID]) Len() int {
	return len(t.global)
}

func (t *Tracker[T, ID]) IsSelected(position int) bool {
	_, ok := t.global[position]
	return ok
}

// SelectedIDs returns the resolved identifiers ordered by position.
func (t *Tracker[T, ID]) SelectedIDs() []ID {
	return t.global.IDs()
}

// PlaceholderPositions returns the selected positions without an identifier.
func (t *Tracker[T, ID]) PlaceholderPositions() []int {
	return t.global.Placeholders()
}

func (t *Tracker[T, ID]) setPage(rowSelection RowSelection) {
	t.page = rowSelection
	if t.push != nil {
		t.push(maps.Clone(rowSelection))
	}
}
