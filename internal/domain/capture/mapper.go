// Package capture turns pointer clicks on the pitch into pending event points.
//
// It holds the coordinate mapper, the capture-mode resolver and the small
// state machine that decides whether a click sets the start or the end point.
package capture

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/model"
)

const (
	maxPercent = 100
	// precision is the number of decimals kept on stored coordinates.
	precision = 100
)

// Rect is the on-screen bounding box of the pitch, in the same units as the
// click position (pixels in a browser, cells in a terminal).
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// MapClick converts a click position into percentage coordinates relative to
// rect. Each axis is clamped to [0,100] and then rounded to 2 decimals, so a
// stored point is exactly what gets submitted.
func MapClick(clientX, clientY float64, rect Rect) (model.Point, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return model.Point{}, errors.Wrapf(ErrEmptyRect, "%gx%g", rect.Width, rect.Height)
	}
	return model.Point{
		X: normalize((clientX - rect.Left) / rect.Width * maxPercent),
		Y: normalize((clientY - rect.Top) / rect.Height * maxPercent),
	}, nil
}

func normalize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(maxPercent, v))
	return math.Round(v*precision) / precision
}
