package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	// Nairobi CBD to Westlands is roughly 3.5km.
	cbd := PointFromLatLng(-1.286389, 36.817223)
	westlands := PointFromLatLng(-1.267788, 36.811029)

	distance := DistanceMeters(cbd, westlands)
	assert.Greater(t, distance, uint(1500))
	assert.Less(t, distance, uint(3500))

	assert.Equal(t, uint(0), DistanceMeters(cbd, cbd))
}

func TestPointFromLatLng(t *testing.T) {
	p := PointFromLatLng(-1.28, 36.82)
	assert.Equal(t, 36.82, p.X())
	assert.Equal(t, -1.28, p.Y())
}

func TestWalkingTimeMinutes(t *testing.T) {
	assert.Equal(t, uint(0), WalkingTimeMinutes(0))
	assert.Equal(t, uint(1), WalkingTimeMinutes(50))
	assert.Equal(t, uint(1), WalkingTimeMinutes(80))
	assert.Equal(t, uint(2), WalkingTimeMinutes(81))
	assert.Equal(t, uint(10), WalkingTimeMinutes(800))
}
