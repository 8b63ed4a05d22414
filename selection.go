package pageselect

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// RowSelection is the selection model of the page currently displayed:
// page-relative row index -> selected.
type RowSelection map[int]bool

// NewRowSelection returns a RowSelection with indices 0..numberOfRows-1
// selected.
func NewRowSelection(numberOfRows int) RowSelection {
	ret := make(RowSelection, max(numberOfRows, 0))
	for i := 0; i < numberOfRows; i++ {
		ret[i] = true
	}

	return ret
}

// Indices returns the selected page-relative indices in ascending order.
func (r RowSelection) Indices() []int {
	ret := lo.Keys(lo.PickBy(r, func(_ int, selected bool) bool { return selected }))
	slices.Sort(ret)

	return ret
}

// Entry is the value stored for a selected global position. A placeholder
// entry (Resolved == false) marks a position that is selected while the
// identifier of the row there is not known yet.
type Entry[ID comparable] struct {
	ID       ID
	Resolved bool
}

func Resolved[ID comparable](id ID) Entry[ID] {
	return Entry[ID]{ID: id, Resolved: true}
}

func Placeholder[ID comparable]() Entry[ID] {
	return Entry[ID]{}
}

// GlobalSelection maps global positions in the full ordered result set to the
// entry selected there.
type GlobalSelection[ID comparable] map[int]Entry[ID]

// NewPlaceholderSelection returns a GlobalSelection with placeholders at
// positions 0..numberOfRows-1.
func NewPlaceholderSelection[ID comparable](numberOfRows int) GlobalSelection[ID] {
	ret := make(GlobalSelection[ID], max(numberOfRows, 0))
	for i := 0; i < numberOfRows; i++ {
		ret[i] = Placeholder[ID]()
	}

	return ret
}

// Positions returns the selected positions in ascending order.
func (s GlobalSelection[ID]) Positions() []int {
	ret := lo.Keys(s)
	slices.Sort(ret)

	return ret
}

// IDs returns the resolved identifiers ordered by position.
func (s GlobalSelection[ID]) IDs() []ID {
	return lo.FilterMap(s.Positions(), func(position int, _ int) (ID, bool) {
		entry := s[position]
		return entry.ID, entry.Resolved
	})
}

// Placeholders returns the positions whose identifier is still unknown, in
// ascending order.
func (s GlobalSelection[ID]) Placeholders() []int {
	return lo.Filter(s.Positions(), func(position int, _ int) bool {
		return !s[position].Resolved
	})
}

func (s GlobalSelection[ID]) Clone() GlobalSelection[ID] {
	if s == nil {
		return GlobalSelection[ID]{}
	}

	return maps.Clone(s)
}
