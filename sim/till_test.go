package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTillPool_FindFree_LowestIDWins(t *testing.T) {
	// GIVEN three tills where till 1 is busy and tills 2 and 3 are free
	p := NewTillPool(3)
	p.Tills()[0].Assign(2)

	// WHEN a free till is requested
	got := p.FindFree()

	// THEN till 2 is returned
	assert.NotNil(t, got)
	assert.Equal(t, 2, got.ID)
}

func TestTillPool_FindFree_AllBusy_ReturnsNil(t *testing.T) {
	p := NewTillPool(2)
	p.Tills()[0].Assign(1)
	p.Tills()[1].Assign(1)
	assert.Nil(t, p.FindFree())
	assert.True(t, p.Busy())
}

func TestTillPool_IDs_StartAtOne(t *testing.T) {
	p := NewTillPool(2)
	assert.Equal(t, 1, p.Tills()[0].ID)
	assert.Equal(t, 2, p.Tills()[1].ID)
	assert.Equal(t, 2, p.Len())
}

func TestTill_Advance_BusyCountsDown(t *testing.T) {
	// GIVEN a till serving for 2 ticks
	till := &Till{ID: 1}
	till.Assign(2)

	// WHEN advanced three times
	till.Advance()
	till.Advance()
	till.Advance()

	// THEN it was busy twice, idle once and is free again
	assert.Equal(t, 2, till.BusyTicks)
	assert.Equal(t, 1, till.IdleTicks)
	assert.True(t, till.Free())
}

func TestTill_Assign_WhileBusy_Panics(t *testing.T) {
	till := &Till{ID: 1}
	till.Assign(3)
	assert.Panics(t, func() { till.Assign(1) })
}

func TestTillPool_Advance_IdlePoolOnlyMovesIdleTicks(t *testing.T) {
	// GIVEN an idle pool and an empty queue
	p := NewTillPool(2)
	bq := NewBuyerQueue(5)

	// WHEN time advances
	bq.IncrementWaiting()
	p.Advance()

	// THEN only IdleTicks changed
	for _, till := range p.Tills() {
		assert.Equal(t, 1, till.IdleTicks)
		assert.Equal(t, 0, till.BusyTicks)
		assert.Equal(t, 0, till.RemainingTicks)
	}
	assert.Equal(t, 0, bq.Len())
	assert.False(t, p.Busy())
}

func TestLimits_ServiceTicks_FloorPlusOne(t *testing.T) {
	limits := NewLimits(5, 2, 50, 3)
	tests := []struct {
		items int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 2},
		{6, 3},
		{8, 3},
		{9, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, limits.ServiceTicks(tc.items), "items=%d", tc.items)
	}
}
