package trainer

import (
	"fmt"
	"strings"
)

// FormatWeight renders a weight without a trailing ".0" for whole numbers,
// e.g. 60 and 62.5.
func FormatWeight(w float64) string {
	if w == float64(int64(w)) {
		return fmt.Sprintf("%d", int64(w))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", w), "0"), ".")
}

// FormatWeightPrecise renders a weight with at most one decimal place.
func FormatWeightPrecise(w float64) string {
	if w == float64(int64(w)) {
		return fmt.Sprintf("%d", int64(w))
	}
	return fmt.Sprintf("%.1f", w)
}

// FormatVolume renders a session volume rounded to whole kilograms.
func FormatVolume(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.0f", v)
}

// FormatRest renders a rest period, e.g. "45s", "1m 30s", "4 min".
func FormatRest(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	min := seconds / 60
	sec := seconds % 60
	if sec > 0 {
		return fmt.Sprintf("%dm %ds", min, sec)
	}
	return fmt.Sprintf("%d min", min)
}

// FormatDate converts a stored YYYY-MM-DD date to the DD.MM.YYYY display
// form. Anything that does not look like a stored date passes through.
func FormatDate(storageDate string) string {
	parts := strings.Split(storageDate, "-")
	if len(parts) != 3 {
		return storageDate
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

// formatRepRange renders an inclusive rep range, e.g. "8–12".
func formatRepRange(r RepRange) string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d–%d", r.Min, r.Max)
}
