package trace

import (
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalServices   int
	MeanWait        float64
	MedianWait      float64
	P90Wait         float64
	MaxWait         int
	ServicesPerTill map[int]int     // till ID → buyers served
	TillUtilization map[int]float64 // till ID → busy / (idle + busy)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServicesPerTill: make(map[int]int),
		TillUtilization: make(map[int]float64),
	}
	if st == nil {
		return summary
	}

	summary.TotalServices = len(st.Services)
	waits := make([]float64, 0, len(st.Services))
	for _, s := range st.Services {
		summary.ServicesPerTill[s.TillID]++
		waits = append(waits, float64(s.WaitingTicks))
		if s.WaitingTicks > summary.MaxWait {
			summary.MaxWait = s.WaitingTicks
		}
	}

	if len(waits) > 0 {
		summary.MeanWait = waitStat("mean", func() (float64, error) { return stats.Mean(waits) })
		summary.MedianWait = waitStat("median", func() (float64, error) { return stats.Median(waits) })
		summary.P90Wait = waitStat("p90", func() (float64, error) { return stats.Percentile(waits, 90) })
	}

	for _, t := range st.Tills {
		total := t.IdleTicks + t.BusyTicks
		if total > 0 {
			summary.TillUtilization[t.TillID] = float64(t.BusyTicks) / float64(total)
		}
	}

	return summary
}

func waitStat(name string, fn func() (float64, error)) float64 {
	v, err := fn()
	if err != nil {
		logrus.Debugf("trace: cannot compute %s wait: %v", name, err)
		return 0
	}
	return v
}
