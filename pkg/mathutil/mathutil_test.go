package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 3.3, Round1(3.3333))
	assert.Equal(t, 2.0, Round(1.5, 0))
	assert.Equal(t, 12.35, Round(12.345001, 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.9, Clamp(0.2, 0.9, 1.1))
	assert.Equal(t, 1.1, Clamp(4, 0.9, 1.1))
	assert.Equal(t, 1.0, Clamp(1, 0.9, 1.1))
}

func TestDistance3D(t *testing.T) {
	assert.InDelta(t, 5.0, Distance3D(0, 0, 0, 3, 4, 0), 1e-9)
	assert.InDelta(t, 0.0, Distance3D(1, 2, 3, 1, 2, 3), 1e-9)
}
