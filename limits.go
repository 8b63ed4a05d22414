package pageselect

const (
	// DefaultPageSize is the number of table rows shown when a request leaves
	// the page size unset.
	DefaultPageSize = 10
	// MaxPageSize caps the rows a single table page may show.
	MaxPageSize = 100

	// MaxBatchSize caps the rows a Resolver reads per query. It is also the
	// batch size of a Resolver without WithBatchSize.
	MaxBatchSize = 1000
)

// IsNormalizedPageSizeMax clamps a requested row count into (0, maxPageSize]
// and reports whether the request was already within bounds. A missing
// (non-positive) page size falls back to DefaultPageSize.
func IsNormalizedPageSizeMax(pageSize int, maxPageSize int) (int, bool) {
	if pageSize <= 0 {
		return DefaultPageSize, false
	} else if pageSize > maxPageSize {
		return maxPageSize, false
	}

	return pageSize, true
}

// NormalizePageSizeMax is IsNormalizedPageSizeMax without the report.
func NormalizePageSizeMax(pageSize int, maxPageSize int) int {
	ret, _ := IsNormalizedPageSizeMax(pageSize, maxPageSize)
	return ret
}

// NormalizePageSize clamps a table page size against MaxPageSize.
func NormalizePageSize(pageSize int) int {
	return NormalizePageSizeMax(pageSize, MaxPageSize)
}
