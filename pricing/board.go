package pricing

// Rect is the board image bounds in client pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClampPercent bounds a percentage coordinate to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MarkerPosition converts a pointer drop offset inside (or near) the
// board rectangle into percentage coordinates clamped to [0,100] on both
// axes. A drop exactly on the rectangle's top-left corner yields (0,0).
func MarkerPosition(offsetX, offsetY float64, r Rect) (x, y float64) {
	if r.Width > 0 {
		x = (offsetX - r.Left) / r.Width * 100
	}
	if r.Height > 0 {
		y = (offsetY - r.Top) / r.Height * 100
	}
	return ClampPercent(x), ClampPercent(y)
}
