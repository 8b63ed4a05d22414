package pageselect

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// MinimumFilesForZipWarning is the number of selected files a selection must
// exceed before the zip size limit is checked. A single file is downloaded as
// is.
const MinimumFilesForZipWarning = 1

var _byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// ZipDownloadLimit is the server-side limit on the size of a zip download.
// Zero disables the check.
type ZipDownloadLimit struct {
	Bytes int64 `json:"bytes"`
}

// Exceeded reports whether downloading selectedCount files of totalBytes as a
// zip archive goes over the limit.
func (l ZipDownloadLimit) Exceeded(selectedCount int, totalBytes int64) bool {
	return l.Bytes > 0 &&
		selectedCount > MinimumFilesForZipWarning &&
		totalBytes > l.Bytes
}

// SelectionTotalSize sums the sizes of the selected items found in items.
//
// Only resolved entries count: placeholders and identifiers missing from
// items (rows of pages that are not loaded) contribute nothing, so the result
// is a lower bound for a selection made with SelectAll.
func SelectionTotalSize[T any, ID comparable](
	selection GlobalSelection[ID],
	items []T,
	getID func(T) ID,
	size func(T) int64,
) int64 {
	byID := lo.KeyBy(items, getID)

	return lo.SumBy(selection.IDs(), func(id ID) int64 {
		item, ok := byID[id]
		if !ok {
			return 0
		}

		return size(item)
	})
}

// HumanReadableBytes formats a byte count with 1024-based units and one
// decimal, e.g. "1.5 MB".
func HumanReadableBytes(bytes int64) string {
	if bytes <= 0 {
		return fmt.Sprintf("%.1f %s", 0.0, _byteUnits[0])
	}

	unitIndex := 0
	for v := bytes; v >= 1024; v /= 1024 {
		unitIndex++
	}
	if unitIndex >= len(_byteUnits) {
		return fmt.Sprintf("more than 1024.0 %s", lo.LastOrEmpty(_byteUnits))
	}

	value := float64(bytes) / math.Pow(1024, float64(unitIndex))

	return fmt.Sprintf("%.1f %s", value, _byteUnits[unitIndex])
}
