package checklist

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidIndex is returned when a toggle targets a row that does not exist.
	ErrInvalidIndex = errors.New("invalid row index")
)

// CountSelected returns the number of selected rows.
func CountSelected(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Selected {
			n++
		}
	}
	return n
}

// ComputeProgress returns the percentage of selected rows in [0, 100].
// An empty slice has progress 0.
func ComputeProgress(rows []Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	return float64(CountSelected(rows)) / float64(len(rows)) * 100
}

// FormatPercent renders progress as a rounded integer label, e.g. 42.7 -> "43%".
// Values are clamped to [0, 100]; NaN renders as "0%".
func FormatPercent(progress float64) string {
	switch {
	case math.IsNaN(progress) || progress < 0:
		progress = 0
	case progress > 100:
		progress = 100
	}
	return fmt.Sprintf("%d%%", int(math.Round(progress)))
}

// ToggleRow returns a new slice with the selected flag at index flipped.
// The input slice is never modified.
func ToggleRow(rows []Row, index int) ([]Row, error) {
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("%w: %d (have %d rows)", ErrInvalidIndex, index, len(rows))
	}
	updated := make([]Row, len(rows))
	copy(updated, rows)
	updated[index].Selected = !updated[index].Selected
	return updated, nil
}
