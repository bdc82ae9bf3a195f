// Package trace provides service-trace recording for post-run analysis of a
// queue simulation. A SimulationTrace is attached to a simulator as a tick
// observer and keeps one record per buyer served.
package trace

// ServiceRecord captures a single till assignment.
type ServiceRecord struct {
	BuyerID      string
	TillID       int
	Clock        int // tick in which service started
	Items        int
	WaitingTicks int
	ServiceTicks int
}

// TillRecord captures a till's cumulative counters at the end of the trace.
type TillRecord struct {
	TillID    int
	IdleTicks int
	BusyTicks int
}
