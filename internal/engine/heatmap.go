package engine

import (
	"time"

	"github.com/wanplusss/momento/internal/model"
)

// HeatmapDays is the window rendered by the activity heatmap (16 weeks).
const HeatmapDays = 112

// HeatmapCell is one day of activity intensity, scaled 0 (none) to 4 (4+
// sessions).
type HeatmapCell struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Intensity int    `json:"intensity"`
}

// Heatmap buckets sessions by day over the trailing HeatmapDays days ending
// at now, oldest first.
func Heatmap(sessions []model.Session, now time.Time) []HeatmapCell {
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[DayString(s.EndTime)]++
	}

	cells := make([]HeatmapCell, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		day := DayString(now.UTC().AddDate(0, 0, -i))
		intensity := counts[day]
		if intensity > 4 {
			intensity = 4
		}
		cells = append(cells, HeatmapCell{Date: day, Intensity: intensity})
	}
	return cells
}
