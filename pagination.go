package pageselect

import (
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// RawPagination is intended for API payloads. For proper code generation, inline it:
//
//	type FilesRequest struct {
//	    Paging RawPagination `json:",inline"`
//	}
type RawPagination struct {
	// Page - 1-based page number. Values below 1 select the first page.
	Page int `json:"page"`
	// PageSize - number of rows per page, normalized with NormalizePageSize.
	PageSize int `json:"pageSize"`
}

// Decode converts RawPagination into PageInfo for a result set of totalItems
// rows, normalizing Page and PageSize.
func (p RawPagination) Decode(totalItems int) PageInfo {
	return PageInfo{
		Page:       max(p.Page, 1),
		PageSize:   NormalizePageSize(p.PageSize),
		TotalItems: max(totalItems, 0),
	}
}

// PageInfo is the pagination state of a table: which page is displayed, how
// many rows a page holds and how many rows the full result set has.
//
// A row at page-relative index i of the current page sits at global position
//
//	i + (Page-1)*PageSize
//
// of the full, unpaginated result set.
type PageInfo struct {
	Page       int
	PageSize   int
	TotalItems int
}

func NewPageInfo(page, pageSize, totalItems int) PageInfo {
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
	}
}

// Offset returns the global position of the first row of the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Indexes returns the global positions covered by the current page, one per
// page-relative index. Empty when PageSize is not positive.
func (p PageInfo) Indexes() []int {
	if p.PageSize <= 0 {
		return nil
	}

	offset := p.Offset()
	ret := make([]int, p.PageSize)
	for i := range ret {
		ret[i] = i + offset
	}

	return ret
}

// Contains reports whether the global position falls within the current page.
func (p PageInfo) Contains(position int) bool {
	_, ok := p.RelativeIndex(position)
	return ok
}

// RelativeIndex maps a global position to its page-relative index.
func (p PageInfo) RelativeIndex(position int) (int, bool) {
	if p.PageSize <= 0 {
		return 0, false
	}

	rel := position - p.Offset()
	if rel < 0 || rel >= p.PageSize {
		return 0, false
	}

	return rel, true
}

// GlobalPosition maps a page-relative index to its global position.
func (p PageInfo) GlobalPosition(index int) (int, bool) {
	if p.PageSize <= 0 || index < 0 || index >= p.PageSize {
		return 0, false
	}

	return index + p.Offset(), true
}

// TotalPages returns the number of pages needed to show TotalItems rows.
func (p PageInfo) TotalPages() int {
	if p.PageSize <= 0 || p.TotalItems <= 0 {
		return 0
	}

	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// VisibleItems returns the number of rows actually present on the current
// page: PageSize everywhere except on the last page.
func (p PageInfo) VisibleItems() int {
	if p.PageSize <= 0 {
		return 0
	}

	return lo.Clamp(p.TotalItems-p.Offset(), 0, p.PageSize)
}

// IsLastPage returns true if no rows follow the current page.
func (p PageInfo) IsLastPage() bool {
	return p.Offset()+p.PageSize >= p.TotalItems
}

func (p PageInfo) WithPage(page int) PageInfo {
	p.Page = page
	return p
}

// WithPageSize changes the page size and keeps the page number. Positions
// selected under the previous page size are not translated.
func (p PageInfo) WithPageSize(pageSize int) PageInfo {
	p.PageSize = pageSize
	return p
}

func (p PageInfo) WithTotalItems(totalItems int) PageInfo {
	p.TotalItems = totalItems
	return p
}

// Apply applies LIMIT/OFFSET of the current page to a gorm query.
func (p PageInfo) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(max(p.Offset(), 0)).Limit(max(p.PageSize, 0))
}
