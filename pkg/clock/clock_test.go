package clock_test

import (
	"testing"
	"time"

	"github.com/cengizhan/substack-sync/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func TestDefaultClock(t *testing.T) {
	t1 := time.Now()
	assert.WithinDuration(t, t1, clock.Now(), 1*time.Second)
	time.Sleep(200 * time.Millisecond)
	// time is not frozen by default
	assert.NotEqual(t, t1, clock.Now())
}

func TestFreezeAt(t *testing.T) {
	point := time.Date(2024, 01, 01, 10, 00, 00, 00, time.UTC)
	clock.FreezeAt(point)
	defer clock.Unfreeze()
	assert.Equal(t, point, clock.Now())

	time.Sleep(100 * time.Millisecond)
	// time is always the same
	assert.Equal(t, point, clock.Now())
}

func TestFastForward(t *testing.T) {
	point := time.Date(2024, 01, 01, 10, 00, 00, 00, time.UTC)
	testClock := clock.FreezeAt(point)
	defer clock.Unfreeze()

	testClock.FastForward(1 * time.Hour)
	assert.Equal(t, point.Add(1*time.Hour), clock.Now())
}

func TestUnfreeze(t *testing.T) {
	point := time.Date(2024, 01, 01, 10, 00, 00, 00, time.UTC)
	clock.FreezeAt(point)
	clock.Unfreeze()
	assert.WithinDuration(t, time.Now(), clock.Now(), 1*time.Second)
}
