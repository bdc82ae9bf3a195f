package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRecorded runs a simulator to completion and returns every snapshot.
func runRecorded(t *testing.T, cfg RunConfig, schedule Schedule) (*Simulator, []TickSnapshot) {
	t.Helper()
	s, err := NewSimulator(cfg, schedule)
	require.NoError(t, err)
	var snaps []TickSnapshot
	s.AddObserver(TickObserverFunc(func(snap TickSnapshot) {
		snaps = append(snaps, snap)
	}))
	require.NoError(t, s.Run())
	return s, snaps
}

func assignments(snaps []TickSnapshot) []AssignmentEvent {
	var out []AssignmentEvent
	for _, snap := range snaps {
		out = append(out, snap.Assignments...)
	}
	return out
}

// Scenario A: one till, buyers due after 2 and then 1 more tick with 6 and 3 items.
func TestSimulator_SingleTill_SecondBuyerWaits(t *testing.T) {
	// GIVEN one till, service rate 3 and countdowns [2, 1]
	cfg := NewRunConfig(NewLimits(5, 2, 50, 3), 6, 1)
	schedule := Schedule{{Countdown: 2, Items: 6}, {Countdown: 1, Items: 3}}

	// WHEN the simulation runs
	s, snaps := runRecorded(t, cfg, schedule)

	// THEN B1 arrives at tick 2 and is served at once for 3 ticks
	require.Len(t, snaps[2].Arrivals, 1)
	assert.Equal(t, "B1", snaps[2].Arrivals[0].BuyerID)
	require.Len(t, snaps[2].Assignments, 1)
	assert.Equal(t, AssignmentEvent{TillID: 1, BuyerID: "B1", Items: 6, WaitingTicks: 0, ServiceTicks: 3}, snaps[2].Assignments[0])

	// AND B2 arrives at tick 3 but is only served at tick 5 after waiting 2 ticks
	require.Len(t, snaps[3].Arrivals, 1)
	assert.Equal(t, "B2", snaps[3].Arrivals[0].BuyerID)
	assert.Empty(t, snaps[3].Assignments)
	assert.Empty(t, snaps[4].Assignments)
	require.Len(t, snaps[5].Assignments, 1)
	assert.Equal(t, AssignmentEvent{TillID: 1, BuyerID: "B2", Items: 3, WaitingTicks: 2, ServiceTicks: 2}, snaps[5].Assignments[0])

	// AND the statistics reflect one waiting buyer
	sum := s.Summary()
	assert.Equal(t, 2, sum.MaxWait)
	assert.Equal(t, 2, sum.TotalWaitTicks)
	assert.Equal(t, 1, sum.NoWaitBuyers)
	assert.Equal(t, 1, sum.MaxQueueLength)
	assert.Equal(t, 2, sum.QueueNonemptyTicks)
	assert.Equal(t, 2, sum.TotalQueueLengthSum)
	assert.Equal(t, 1.0, sum.AverageWait)
	require.NotNil(t, sum.AverageQueueLength)
	assert.Equal(t, 1.0, *sum.AverageQueueLength)

	// AND the till finished B2 one tick after the horizon
	assert.Equal(t, 1, sum.ExtraTicks)
	assert.Equal(t, PhaseDone, s.Phase)
	till := s.Tills.Tills()[0]
	assert.Equal(t, 5, till.BusyTicks)
	assert.Equal(t, 2, till.IdleTicks)
}

// Scenario B: two tills, two buyers due at tick 0.
func TestSimulator_TwoTills_SimultaneousArrivals_NoWait(t *testing.T) {
	// GIVEN two tills and two buyers with countdown 0
	cfg := NewRunConfig(DefaultLimits(), 1, 2)
	schedule := Schedule{{Countdown: 0, Items: 3}, {Countdown: 0, Items: 5}}

	// WHEN the simulation runs
	s, snaps := runRecorded(t, cfg, schedule)

	// THEN both arrive at tick 0 and go to tills 1 and 2 without waiting
	require.Len(t, snaps[0].Arrivals, 2)
	got := assignments(snaps)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].TillID)
	assert.Equal(t, "B1", got[0].BuyerID)
	assert.Equal(t, 2, got[1].TillID)
	assert.Equal(t, "B2", got[1].BuyerID)
	sum := s.Summary()
	assert.Equal(t, 2, sum.NoWaitBuyers)
	assert.Equal(t, 0, sum.TotalWaitTicks)
	assert.Nil(t, sum.AverageQueueLength)
}

// Scenario C: the only buyer is due after the horizon.
func TestSimulator_ArrivalAfterHorizon_NeverAdmitted(t *testing.T) {
	// GIVEN a one-tick horizon and a buyer due at tick 3
	cfg := NewRunConfig(DefaultLimits(), 1, 1)
	schedule := Schedule{{Countdown: 3, Items: 4}}

	// WHEN the simulation runs
	s, snaps := runRecorded(t, cfg, schedule)

	// THEN only the running tick happened and nobody arrived
	require.Len(t, snaps, 1)
	assert.Equal(t, PhaseRunning, snaps[0].Phase)
	sum := s.Summary()
	assert.Equal(t, 0, sum.BuyersArrived)
	assert.Equal(t, 0, sum.ExtraTicks)
	assert.Equal(t, 0.0, sum.AverageWait)
	assert.Equal(t, PhaseDone, s.Phase)
}

func TestSimulator_Draining_ServesQueueWithoutArrivals(t *testing.T) {
	// GIVEN the scenario A schedule with the horizon cut to 4 ticks
	cfg := NewRunConfig(NewLimits(5, 2, 50, 3), 4, 1)
	schedule := Schedule{{Countdown: 2, Items: 6}, {Countdown: 1, Items: 3}, {Countdown: 1, Items: 9}}

	// WHEN the simulation runs
	s, snaps := runRecorded(t, cfg, schedule)

	// THEN the third buyer, due at tick 4, never arrives
	sum := s.Summary()
	assert.Equal(t, 2, sum.BuyersArrived)

	// AND B2 is served while draining, then the till finishes alone
	phases := make([]Phase, len(snaps))
	for i, snap := range snaps {
		phases[i] = snap.Phase
	}
	assert.Equal(t, []Phase{
		PhaseRunning, PhaseRunning, PhaseRunning, PhaseRunning,
		PhaseDraining, PhaseDraining,
		PhaseFinishing,
	}, phases)
	require.Len(t, snaps[5].Assignments, 1)
	assert.Equal(t, "B2", snaps[5].Assignments[0].BuyerID)
	assert.Equal(t, 2, snaps[5].Assignments[0].WaitingTicks)
	assert.Equal(t, 3, sum.ExtraTicks)
	assert.Equal(t, 7, s.Clock)
	assert.Empty(t, snaps[6].Assignments)
}

func TestSimulator_QueueOverflow_AbortsRun(t *testing.T) {
	// GIVEN a queue of 2 and four buyers due at tick 0
	cfg := NewRunConfig(NewLimits(2, 2, 50, 3), 5, 1)
	schedule := Schedule{{0, 30}, {0, 30}, {0, 30}, {0, 30}}
	s, err := NewSimulator(cfg, schedule)
	require.NoError(t, err)

	// WHEN the simulation runs
	err = s.Run()

	// THEN it fails with ErrQueueOverflow and keeps failing
	assert.True(t, errors.Is(err, ErrQueueOverflow), "got %v", err)
	assert.LessOrEqual(t, s.WaitQ.Len(), 2)
	assert.True(t, errors.Is(s.Step(), ErrQueueOverflow))
	assert.NotEqual(t, PhaseDone, s.Phase)
}

func TestSimulator_TotalWaitEqualsSumOfServedWaits(t *testing.T) {
	// GIVEN a busy schedule on two tills
	cfg := NewRunConfig(NewLimits(5, 2, 50, 3), 20, 2)
	schedule := Schedule{
		{1, 10}, {0, 4}, {1, 7}, {0, 0}, {2, 12}, {1, 3}, {0, 8}, {3, 1}, {1, 14}, {2, 5},
	}

	// WHEN the simulation runs
	s, snaps := runRecorded(t, cfg, schedule)

	// THEN the aggregate matches the per-assignment waits
	total, noWait, maxWait := 0, 0, 0
	for _, a := range assignments(snaps) {
		total += a.WaitingTicks
		if a.WaitingTicks == 0 {
			noWait++
		}
		maxWait = max(maxWait, a.WaitingTicks)
		assert.Equal(t, a.Items/3+1, a.ServiceTicks)
	}
	sum := s.Summary()
	assert.Equal(t, total, sum.TotalWaitTicks)
	assert.Equal(t, noWait, sum.NoWaitBuyers)
	assert.Equal(t, maxWait, sum.MaxWait)
	assert.Equal(t, len(schedule), sum.BuyersServed)

	// AND the queue never exceeded its capacity and every till ends idle
	for _, snap := range snaps {
		assert.LessOrEqual(t, len(snap.Queue), 5)
	}
	assert.False(t, s.Tills.Busy())
	for _, till := range s.Tills.Tills() {
		assert.Equal(t, s.Clock, till.IdleTicks+till.BusyTicks)
	}
}

func TestSimulator_Step_AfterDone_IsNoop(t *testing.T) {
	s, _ := runRecorded(t, NewRunConfig(DefaultLimits(), 2, 1), nil)
	clock := s.Clock
	require.NoError(t, s.Step())
	assert.Equal(t, clock, s.Clock)
}

func TestNewSimulator_RejectsBadInput(t *testing.T) {
	limits := NewLimits(5, 2, 3, 3)

	_, err := NewSimulator(NewRunConfig(limits, 4, 1), nil)
	assert.True(t, errors.Is(err, ErrConfigOutOfRange), "got %v", err)

	_, err = NewSimulator(NewRunConfig(limits, 3, 1), Schedule{{1, 1}, {1, 1}, {1, 1}, {1, 1}})
	assert.True(t, errors.Is(err, ErrScheduleTooLong), "got %v", err)

	_, err = NewSimulator(NewRunConfig(limits, 3, 1), Schedule{{-1, 1}})
	assert.Error(t, err)
}
