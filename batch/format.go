package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%016x", h)
}

// ShortPath shortens path to at most maxLen bytes for progress lines.
// Whole trailing segments are kept behind ".../" when at least the file name
// fits; otherwise the end of the file name is kept behind "...".
func ShortPath(path string, maxLen int) string {
	const ellipsis = "..."
	switch {
	case maxLen <= 0:
		return ""
	case len(path) <= maxLen:
		return path
	case maxLen <= len(ellipsis):
		return path[len(path)-maxLen:]
	}

	segs := strings.Split(filepath.ToSlash(path), "/")
	tail := ""
	for i := len(segs) - 1; i > 0; i-- {
		next := strings.Join(segs[i:], "/")
		if len(ellipsis)+1+len(next) > maxLen {
			break
		}
		tail = next
	}
	if tail != "" {
		return ellipsis + "/" + tail
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}

var sizeUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a document size with one decimal in the largest
// binary unit below it. Sizes under 1 KB are exact.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	var unit string
	for _, unit = range sizeUnits {
		size /= 1024
		if size < 1024 {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}

// Reduction returns how much smaller out is than in, as a percentage.
// Growth yields a negative value; an empty input yields 0.
func Reduction(in, out int) float64 {
	if in <= 0 {
		return 0
	}
	return float64(in-out) / float64(in) * 100
}

// FormatReduction renders a size change such as "12.0 KB → 3.0 KB (75.0% smaller)".
func FormatReduction(in, out int) string {
	r := Reduction(in, out)
	change := fmt.Sprintf("%.1f%% smaller", r)
	if r < 0 {
		change = fmt.Sprintf("%.1f%% larger", -r)
	}
	return fmt.Sprintf("%s → %s (%s)", FormatBytes(in), FormatBytes(out), change)
}
