package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	c := NewManual(1000)
	assert.Equal(t, uint64(1000), c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, uint64(1090), c.Now())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, uint64(1091), c.Now())

	c.Set(5)
	assert.Equal(t, uint64(5), c.Now())
}

func TestSystem(t *testing.T) {
	before := uint64(time.Now().Unix())
	now := System{}.Now()
	assert.GreaterOrEqual(t, now, before)
}
