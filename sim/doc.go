// Package sim provides the core discrete-time simulation engine for queue-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - buyer.go, queue.go, till.go: the data model (buyers, the bounded FIFO, the till pool)
//   - arrival.go: the schedule and the countdown feed that admits buyers
//   - simulator.go: the tick loop and the running → draining → finishing → done phases
//   - metrics.go: run statistics and the derived averages
//
// # Tick Algorithm
//
// Each tick of the running phase admits the buyers due that tick, then
// greedily assigns queued buyers to free tills (lowest till ID first), adds a
// tick of waiting time to everyone still queued, advances every till by one
// tick and folds the remaining queue length into the metrics. Draining ticks
// do the same without arrivals; finishing ticks only advance tills.
//
// A till serving a buyer with n items stays busy for n/ServiceRate+1 ticks.
//
// # Sub-packages
//   - sim/workload/: schedule loading and export (text, CSV, YAML)
//   - sim/trace/: per-service trace recording and summaries
package sim
