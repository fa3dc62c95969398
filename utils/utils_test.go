package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegRad(t *testing.T) {
	assert.InDelta(t, 180, Deg(math.Pi), 1e-9)
	assert.InDelta(t, math.Pi/2, Rad(90), 1e-9)
	assert.InDelta(t, 33.3, Deg(Rad(33.3)), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 7.0, Clamp(7, math.Inf(-1), math.Inf(1)))
	assert.Equal(t, 0.0, Clamp(7, 0, 0))
}
