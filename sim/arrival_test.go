package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arrivalTicks runs a feed for n ticks and returns the tick of every arrival.
func arrivalTicks(f *ArrivalFeed, n int) []int {
	var ticks []int
	for tick := 0; tick < n; tick++ {
		for range f.Tick() {
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

func TestArrivalFeed_CountdownsAreRelative(t *testing.T) {
	// GIVEN countdowns [2, 1, 3]
	f := NewArrivalFeed(Schedule{{Countdown: 2, Items: 6}, {Countdown: 1, Items: 3}, {Countdown: 3, Items: 1}})

	// WHEN run for ten ticks
	got := arrivalTicks(f, 10)

	// THEN buyers arrive at ticks 2, 3 and 6
	assert.Equal(t, []int{2, 3, 6}, got)
	assert.True(t, f.Exhausted())
	assert.Equal(t, 3, f.Admitted())
}

func TestArrivalFeed_ZeroCountdown_ArrivesTogether(t *testing.T) {
	// GIVEN two entries with countdown 0
	f := NewArrivalFeed(Schedule{{Countdown: 0, Items: 1}, {Countdown: 0, Items: 2}})

	// WHEN the first tick runs
	due := f.Tick()

	// THEN both arrive in schedule order
	require.Len(t, due, 2)
	assert.Equal(t, 1, due[0].Items)
	assert.Equal(t, 2, due[1].Items)
	assert.True(t, f.Exhausted())
}

func TestArrivalFeed_Exhausted_NoMoreArrivals(t *testing.T) {
	f := NewArrivalFeed(Schedule{{Countdown: 1, Items: 1}})
	assert.Equal(t, []int{1}, arrivalTicks(f, 5))
	assert.Empty(t, f.Tick())
}

func TestArrivalFeed_EmptySchedule(t *testing.T) {
	f := NewArrivalFeed(nil)
	assert.True(t, f.Exhausted())
	assert.Empty(t, f.Tick())
}

func TestSchedule_Validate_RejectsNegatives(t *testing.T) {
	assert.NoError(t, Schedule{{Countdown: 0, Items: 0}}.Validate())
	assert.ErrorContains(t, Schedule{{Countdown: 1, Items: 1}, {Countdown: -1, Items: 1}}.Validate(), "arrival 2")
	assert.ErrorContains(t, Schedule{{Countdown: 1, Items: -3}}.Validate(), "items")
}
