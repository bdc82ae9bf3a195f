// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Phase is the driver's position in a run.
type Phase string

const (
	// PhaseRunning admits arrivals and serves buyers, ticks 0..SimulationTime-1.
	PhaseRunning Phase = "running"
	// PhaseDraining serves the remaining queue with arrivals disabled.
	PhaseDraining Phase = "draining"
	// PhaseFinishing only advances tills until none is busy.
	PhaseFinishing Phase = "finishing"
	// PhaseDone is terminal; statistics are final.
	PhaseDone Phase = "done"
)

// Simulator is the core object that holds simulation time, system state and
// the tick loop. It owns the queue, the till pool and the metrics for the
// whole run and is not safe for concurrent use.
type Simulator struct {
	Clock      int // number of ticks completed
	Horizon    int // SimulationTime
	ExtraTicks int // ticks run after the horizon
	Phase      Phase
	Limits     Limits

	// WaitQ holds buyers that have arrived but not reached a till
	WaitQ   *BuyerQueue
	Tills   *TillPool
	Metrics *Metrics

	arrivals  *ArrivalFeed
	observers []TickObserver
	fault     error
}

// NewSimulator validates cfg and the schedule and returns a simulator ready
// to run from tick 0.
func NewSimulator(cfg RunConfig, schedule Schedule) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if len(schedule) > cfg.Limits.MaxTime {
		return nil, fmt.Errorf("%w: %d arrivals, at most %d allowed", ErrScheduleTooLong, len(schedule), cfg.Limits.MaxTime)
	}
	return &Simulator{
		Horizon:  cfg.SimulationTime,
		Phase:    PhaseRunning,
		Limits:   cfg.Limits,
		WaitQ:    NewBuyerQueue(cfg.Limits.MaxQueueSize),
		Tills:    NewTillPool(cfg.NumTills),
		Metrics:  NewMetrics(),
		arrivals: NewArrivalFeed(schedule),
	}, nil
}

// AddObserver registers o to receive a snapshot after every tick.
func (sim *Simulator) AddObserver(o TickObserver) {
	sim.observers = append(sim.observers, o)
}

// Run steps the simulation until it is done or a fault occurs.
func (sim *Simulator) Run() error {
	logrus.Infof("[tick %03d] Simulation started: horizon=%d, tills=%d", sim.Clock, sim.Horizon, sim.Tills.Len())
	for sim.Phase != PhaseDone {
		if err := sim.Step(); err != nil {
			return err
		}
	}
	logrus.Infof("[tick %03d] Simulation ended after %d extra ticks", sim.Clock, sim.ExtraTicks)
	return nil
}

// Step executes a single tick according to the current phase, then moves to
// the next phase if its exit condition holds. Step on a finished simulator
// is a no-op. Once a fault has occurred every call returns it.
func (sim *Simulator) Step() error {
	if sim.fault != nil {
		return sim.fault
	}
	snap := TickSnapshot{Tick: sim.Clock, Phase: sim.Phase}

	switch sim.Phase {
	case PhaseDone:
		return nil
	case PhaseRunning:
		if err := sim.admitArrivals(&snap); err != nil {
			sim.fault = fmt.Errorf("tick %d: %w", sim.Clock, err)
			logrus.Errorf("[tick %03d] %v", sim.Clock, err)
			return sim.fault
		}
		sim.serve(&snap)
	case PhaseDraining:
		sim.serve(&snap)
	case PhaseFinishing:
		sim.Tills.Advance()
	}

	if sim.Phase != PhaseRunning {
		sim.ExtraTicks++
	}
	sim.Clock++
	sim.capture(&snap)
	for _, o := range sim.observers {
		o.ObserveTick(snap)
	}
	sim.settle()
	return nil
}

// admitArrivals moves every buyer due this tick into the queue.
func (sim *Simulator) admitArrivals(snap *TickSnapshot) error {
	for _, a := range sim.arrivals.Tick() {
		b := NewBuyer(sim.Metrics.BuyersArrived+1, a.Items)
		if err := sim.WaitQ.Enqueue(b); err != nil {
			return err
		}
		sim.Metrics.RecordArrival()
		snap.Arrivals = append(snap.Arrivals, ArrivalEvent{BuyerID: b.ID, Items: b.Items})
		logrus.Debugf("[tick %03d] << Arrival: %s (%d items)", sim.Clock, b.ID, b.Items)
	}
	return nil
}

// serve hands queued buyers to free tills, then advances waits and tills and
// records the queue length left over.
func (sim *Simulator) serve(snap *TickSnapshot) {
	for till := sim.Tills.FindFree(); till != nil && sim.WaitQ.Len() > 0; till = sim.Tills.FindFree() {
		b := sim.WaitQ.Dequeue()
		sim.Metrics.RecordServed(b.WaitingTicks)
		ticks := sim.Limits.ServiceTicks(b.Items)
		till.Assign(ticks)
		snap.Assignments = append(snap.Assignments, AssignmentEvent{
			TillID:       till.ID,
			BuyerID:      b.ID,
			Items:        b.Items,
			WaitingTicks: b.WaitingTicks,
			ServiceTicks: ticks,
		})
		logrus.Debugf("[tick %03d] >> Till %d serves %s for %d ticks (waited %d)", sim.Clock, till.ID, b.ID, ticks, b.WaitingTicks)
	}
	sim.WaitQ.IncrementWaiting()
	sim.Tills.Advance()
	sim.Metrics.RecordQueueLength(sim.WaitQ.Len())
}

func (sim *Simulator) capture(snap *TickSnapshot) {
	snap.Tills = make([]TillState, 0, sim.Tills.Len())
	for _, t := range sim.Tills.Tills() {
		snap.Tills = append(snap.Tills, TillState{
			ID:             t.ID,
			IdleTicks:      t.IdleTicks,
			BusyTicks:      t.BusyTicks,
			RemainingTicks: t.RemainingTicks,
		})
	}
	snap.Queue = make([]QueuedBuyer, 0, sim.WaitQ.Len())
	for _, b := range sim.WaitQ.Items() {
		snap.Queue = append(snap.Queue, QueuedBuyer{
			BuyerID:      b.ID,
			WaitingTicks: b.WaitingTicks,
			Items:        b.Items,
		})
	}
}

// settle applies every phase transition whose condition already holds.
func (sim *Simulator) settle() {
	if sim.Phase == PhaseRunning && sim.Clock >= sim.Horizon {
		sim.setPhase(PhaseDraining)
	}
	if sim.Phase == PhaseDraining && sim.WaitQ.Len() == 0 {
		sim.setPhase(PhaseFinishing)
	}
	if sim.Phase == PhaseFinishing && !sim.Tills.Busy() {
		sim.setPhase(PhaseDone)
	}
}

func (sim *Simulator) setPhase(p Phase) {
	logrus.Infof("[tick %03d] Phase %s -> %s", sim.Clock, sim.Phase, p)
	sim.Phase = p
}

// Summary reports the run's statistics. It may be called at any point, but
// the figures are only final once Phase is PhaseDone.
func (sim *Simulator) Summary() Summary {
	return sim.Metrics.Summarize(sim.Horizon, sim.ExtraTicks, sim.Tills.Len())
}
