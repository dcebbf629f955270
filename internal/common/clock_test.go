package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	later := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	clock.SetTime(later)
	assert.Equal(t, later, clock.Now())
}

func TestRealClock_Location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	clock := NewRealClock(loc)

	assert.Equal(t, loc, clock.Now().Location())
	assert.Equal(t, time.Local, NewRealClock(nil).Now().Location())
}
