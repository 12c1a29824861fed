package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerPosition(t *testing.T) {
	rect := Rect{Left: 100, Top: 50, Width: 200, Height: 400}

	tests := []struct {
		name             string
		offsetX, offsetY float64
		wantX, wantY     float64
	}{
		{"top-left corner", 100, 50, 0, 0},
		{"center", 200, 250, 50, 50},
		{"bottom-right corner", 300, 450, 100, 100},
		{"left of bounds clamps", 50, 250, 0, 50},
		{"below bounds clamps", 200, 500, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := MarkerPosition(tt.offsetX, tt.offsetY, rect)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestMarkerPositionZeroSizeRect(t *testing.T) {
	x, y := MarkerPosition(50, 50, Rect{})

	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-12))
	assert.Equal(t, 100.0, ClampPercent(140))
	assert.Equal(t, 37.5, ClampPercent(37.5))
}
