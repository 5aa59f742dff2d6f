package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRoller(t *testing.T) {
	r := NewFixedRoller(0.42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.42, r.Roll())
	}
}

func TestSequenceRoller_ReturnsInOrder(t *testing.T) {
	r := NewSequenceRoller(0.1, 0.9, 0.5)
	assert.Equal(t, 0.1, r.Roll())
	assert.Equal(t, 0.9, r.Roll())
	assert.Equal(t, 0.5, r.Roll())
}

func TestSequenceRoller_PanicsWhenExhausted(t *testing.T) {
	r := NewSequenceRoller(0.1)
	r.Roll()
	assert.Panics(t, func() { r.Roll() })
}
