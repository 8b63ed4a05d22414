package pageselect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_HumanReadableBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0.0 B"},
		{"negative", -5, "0.0 B"},
		{"bytes", 512, "512.0 B"},
		{"kilobyte boundary", 1024, "1.0 KB"},
		{"one and a half megabytes", 1536 * 1024, "1.5 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GB"},
		{"petabytes", 2 * int64(math.Pow(1024, 5)), "2.0 PB"},
		{"beyond petabytes", math.MaxInt64, "more than 1024.0 PB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HumanReadableBytes(tt.bytes))
		})
	}
}

func Test_ZipDownloadLimit_Exceeded(t *testing.T) {
	tests := []struct {
		name     string
		limit    ZipDownloadLimit
		selected int
		total    int64
		want     bool
	}{
		{"no limit configured", ZipDownloadLimit{}, 5, 1 << 40, false},
		{"single file is never zipped", ZipDownloadLimit{Bytes: 10}, 1, 100, false},
		{"under limit", ZipDownloadLimit{Bytes: 100}, 3, 100, false},
		{"over limit", ZipDownloadLimit{Bytes: 100}, 2, 101, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.limit.Exceeded(tt.selected, tt.total))
		})
	}
}

func Test_SelectionTotalSize(t *testing.T) {
	files := []tFile{
		{ID: "a", Size: 100},
		{ID: "b", Size: 20},
		{ID: "c", Size: 3},
	}
	selection := GlobalSelection[string]{
		0: Resolved("a"),
		2: Resolved("c"),
		3: Resolved("z"),
		4: Placeholder[string](),
	}

	got := SelectionTotalSize(selection, files, fileID, func(f tFile) int64 { return f.Size })

	require.Equal(t, int64(103), got)
}

func Test_SelectionTotalSize_FromTracker(t *testing.T) {
	files := []tFile{{ID: "a", Size: 700}, {ID: "b", Size: 600}}
	tracker, _ := newTestTracker(NewPageInfo(1, 2, 2))
	tracker.ReconcileFromPageModel(map[int]tFile{0: files[0], 1: files[1]})

	total := SelectionTotalSize(tracker.Selection(), files, fileID, func(f tFile) int64 { return f.Size })

	require.True(t, ZipDownloadLimit{Bytes: 1024}.Exceeded(tracker.Len(), total))
	require.Equal(t, "1.3 KB", HumanReadableBytes(total))
}
