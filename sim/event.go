package sim

// ArrivalEvent records a buyer joining the queue.
type ArrivalEvent struct {
	BuyerID string
	Items   int
}

// AssignmentEvent records a till starting to serve a buyer.
type AssignmentEvent struct {
	TillID       int
	BuyerID      string
	Items        int
	WaitingTicks int // ticks the buyer spent queueing
	ServiceTicks int // ticks the till will be busy
}

// TillState is a till's counters after a tick.
type TillState struct {
	ID             int
	IdleTicks      int
	BusyTicks      int
	RemainingTicks int
}

// QueuedBuyer is a waiting buyer's state after a tick.
type QueuedBuyer struct {
	BuyerID      string
	WaitingTicks int
	Items        int
}

// TickSnapshot describes one completed tick: what happened during it and the
// state of every till and queued buyer afterwards. Snapshots are copies and
// may be retained by observers.
type TickSnapshot struct {
	Tick        int
	Phase       Phase
	Arrivals    []ArrivalEvent
	Assignments []AssignmentEvent // in assignment order
	Tills       []TillState       // in till order
	Queue       []QueuedBuyer     // head first
}

// TickObserver receives a snapshot after every tick of a run.
type TickObserver interface {
	ObserveTick(TickSnapshot)
}

// TickObserverFunc adapts a plain function to TickObserver.
type TickObserverFunc func(TickSnapshot)

// ObserveTick calls f(s).
func (f TickObserverFunc) ObserveTick(s TickSnapshot) {
	f(s)
}
