// Package engine implements the pure calibration, tiering, and streak math.
// Nothing here touches I/O, so every function can run to completion inside an
// open store transaction.
package engine

import "math"

// WeightedMovingAverage returns the recency-weighted mean of the last window
// values, rounded to the nearest integer. Input must be chronologically
// ascending; callers sort before invoking. Returns 0 for an empty input.
func WeightedMovingAverage(values []float64, window int) float64 {
	if len(values) == 0 || window < 1 {
		return 0
	}
	slice := values
	if len(slice) > window {
		slice = slice[len(slice)-window:]
	}

	var weightedSum, totalWeight float64
	for i, v := range slice {
		w := float64(i + 1)
		weightedSum += v * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Round(weightedSum / totalWeight)
}

// StdDev returns the population standard deviation of the last window values,
// or 0 when fewer than 2 values exist.
func StdDev(values []float64, window int) float64 {
	if len(values) < 2 || window < 1 {
		return 0
	}
	slice := values
	if len(slice) > window {
		slice = slice[len(slice)-window:]
	}

	var sum float64
	for _, v := range slice {
		sum += v
	}
	mean := sum / float64(len(slice))

	var sqSum float64
	for _, v := range slice {
		d := v - mean
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(len(slice)))
}

// RelativeStrength computes an RSI-style consistency score in [0,100] over the
// trailing 14 values. Returns 50 (neutral) when fewer than 5 values exist.
func RelativeStrength(values []float64) int {
	if len(values) < 5 {
		return 50
	}
	slice := values
	if len(slice) > 14 {
		slice = slice[len(slice)-14:]
	}

	var up, down float64
	for i := 1; i < len(slice); i++ {
		d := slice[i] - slice[i-1]
		if d >= 0 {
			up += d
		} else {
			down += -d
		}
	}
	if down == 0 {
		down = 1
	}
	return int(math.Round(100 - 100/(1+up/down)))
}

// HeikenAshiBar is one smoothed bar. Not true OHLC: open is the midpoint of
// the current and previous values.
type HeikenAshiBar struct {
	Index  int     `json:"index"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	IsBull bool    `json:"is_bull"`
}

// HeikenAshi smooths a value history into bars for momentum visualization.
func HeikenAshi(values []float64) []HeikenAshiBar {
	if len(values) == 0 {
		return nil
	}
	bars := make([]HeikenAshiBar, len(values))
	for i, v := range values {
		prev := v
		if i > 0 {
			prev = values[i-1]
		}
		open := (prev + v) / 2
		bars[i] = HeikenAshiBar{
			Index:  i,
			Open:   open,
			High:   math.Max(v, open),
			Low:    math.Min(v, open),
			Close:  v,
			IsBull: v >= open,
		}
	}
	return bars
}

// TrendDirection is the direction of a half-over-half comparison.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// TrendResult compares the newer half of a history against the older half.
type TrendResult struct {
	Percent   int            `json:"percent"`
	Direction TrendDirection `json:"direction"`
}

// Trend splits chronologically ascending values into an older and a newer
// half (newer half gets floor(n/2) entries) and compares their means.
func Trend(values []float64) TrendResult {
	if len(values) < 2 {
		return TrendResult{Direction: TrendNeutral}
	}

	half := len(values) / 2
	recent := values[len(values)-half:]
	older := values[:len(values)-half]
	if len(older) == 0 {
		return TrendResult{Direction: TrendNeutral}
	}

	avgRecent := mean(recent)
	avgOlder := mean(older)
	if avgOlder == 0 {
		return TrendResult{Percent: 100, Direction: TrendUp}
	}

	percent := int(math.Round((avgRecent - avgOlder) / avgOlder * 100))
	dir := TrendNeutral
	if percent > 0 {
		dir = TrendUp
	} else if percent < 0 {
		dir = TrendDown
	}
	if percent < 0 {
		percent = -percent
	}
	return TrendResult{Percent: percent, Direction: dir}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Grade maps a 0-100 score onto a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 95:
		return "S"
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
