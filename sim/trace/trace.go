package trace

import "github.com/queue-sim/queue-sim/sim"

// TraceLevel controls the verbosity of service tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelServices captures every till assignment.
	TraceLevelServices TraceLevel = "services"
	// TraceLevelTicks captures every till assignment and every tick snapshot.
	TraceLevelTicks TraceLevel = "ticks"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelServices: true,
	TraceLevelTicks:    true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects service records during a simulation run.
type SimulationTrace struct {
	Config   TraceConfig
	Services []ServiceRecord
	Ticks    []sim.TickSnapshot // only at TraceLevelTicks
	Tills    []TillRecord       // counters after the latest tick
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Services: make([]ServiceRecord, 0),
	}
}

// Enabled reports whether the trace records anything.
func (st *SimulationTrace) Enabled() bool {
	return st.Config.Level != TraceLevelNone && st.Config.Level != ""
}

// RecordService appends a service record.
func (st *SimulationTrace) RecordService(record ServiceRecord) {
	st.Services = append(st.Services, record)
}

// ObserveTick records the assignments of a tick and refreshes till counters.
func (st *SimulationTrace) ObserveTick(snap sim.TickSnapshot) {
	if !st.Enabled() {
		return
	}
	for _, a := range snap.Assignments {
		st.RecordService(ServiceRecord{
			BuyerID:      a.BuyerID,
			TillID:       a.TillID,
			Clock:        snap.Tick,
			Items:        a.Items,
			WaitingTicks: a.WaitingTicks,
			ServiceTicks: a.ServiceTicks,
		})
	}
	st.Tills = st.Tills[:0]
	for _, t := range snap.Tills {
		st.Tills = append(st.Tills, TillRecord{TillID: t.ID, IdleTicks: t.IdleTicks, BusyTicks: t.BusyTicks})
	}
	if st.Config.Level == TraceLevelTicks {
		st.Ticks = append(st.Ticks, snap)
	}
}
