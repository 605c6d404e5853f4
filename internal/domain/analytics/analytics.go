// Package analytics summarizes recorded pitch events by play type, minute band and zone.
package analytics

import (
	"math"

	"github.com/okian/pitchlog/internal/domain/model"
)

// Zone grid boundaries in percent of the pitch.
const (
	thirdLow  = 33.33
	thirdHigh = 66.66
)

// Breakdown aggregates the events of one direction.
type Breakdown struct {
	Count         int                `json:"count"`
	PlayTypes     map[string]int     `json:"play_types"`
	MinuteBands   map[string]int     `json:"minute_bands"`
	Zones         map[string]int     `json:"zones"`
	PlayTypePct   map[string]float64 `json:"play_types_pct"`
	MinuteBandPct map[string]float64 `json:"minute_bands_pct"`
	ZonePct       map[string]float64 `json:"zones_pct"`
}

// Summary is the analytics view of an event list.
type Summary struct {
	Total   int       `json:"total"`
	For     Breakdown `json:"for"`
	Against Breakdown `json:"against"`
}

// MinuteBand buckets a minute into 0-30, 31-60, 61-90 or 91-120.
func MinuteBand(minute int) string {
	switch {
	case minute <= 30:
		return "0-30"
	case minute <= 60:
		return "31-60"
	case minute <= 90:
		return "61-90"
	default:
		return "91-120"
	}
}

// Zone names the 3x3 grid cell of a point as "<depth>-<side>".
// x runs left to right, y runs from the defensive to the offensive end.
func Zone(p model.Point) string {
	side := "derecha"
	switch {
	case p.X < thirdLow:
		side = "izquierda"
	case p.X < thirdHigh:
		side = "centro"
	}
	depth := "ofensiva"
	switch {
	case p.Y < thirdLow:
		depth = "defensiva"
	case p.Y < thirdHigh:
		depth = "media"
	}
	return depth + "-" + side
}

// Summarize counts events per direction. Zones use the start point.
func Summarize(events []model.Event) Summary {
	s := Summary{Total: len(events), For: newBreakdown(), Against: newBreakdown()}
	for _, e := range events {
		b := &s.Against
		if e.Direction == model.DirectionFor {
			b = &s.For
		}
		b.Count++
		b.PlayTypes[string(e.PlayType)]++
		b.MinuteBands[MinuteBand(e.Minute)]++
		b.Zones[Zone(e.Start)]++
	}
	s.For.fillPercentages()
	s.Against.fillPercentages()
	return s
}

func newBreakdown() Breakdown {
	return Breakdown{
		PlayTypes:   map[string]int{},
		MinuteBands: map[string]int{},
		Zones:       map[string]int{},
	}
}

func (b *Breakdown) fillPercentages() {
	b.PlayTypePct = percent(b.PlayTypes, b.Count)
	b.MinuteBandPct = percent(b.MinuteBands, b.Count)
	b.ZonePct = percent(b.Zones, b.Count)
}

// percent converts counts into percentages of total rounded to one decimal.
func percent(counts map[string]int, total int) map[string]float64 {
	out := make(map[string]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, v := range counts {
		out[k] = math.Round(float64(v)/float64(total)*1000) / 10
	}
	return out
}
