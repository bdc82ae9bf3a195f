// Tracks run-wide queue and waiting-time statistics.

package sim

import (
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Every counter starts at zero and only ever increases.
type Metrics struct {
	MaxQueueLength      int // longest post-service queue seen
	MaxWait             int // longest wait of any served buyer
	TotalWaitTicks      int // sum of waits at service start
	TotalQueueLengthSum int // sum of post-service queue lengths over non-empty ticks
	QueueNonemptyTicks  int // ticks ending with at least one buyer queued
	NoWaitBuyers        int // buyers served with zero wait

	BuyersArrived int
	BuyersServed  int
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordArrival counts a buyer joining the queue.
func (m *Metrics) RecordArrival() {
	m.BuyersArrived++
}

// RecordServed folds the wait of a buyer that has just reached a till.
func (m *Metrics) RecordServed(waitingTicks int) {
	m.BuyersServed++
	m.TotalWaitTicks += waitingTicks
	if waitingTicks > m.MaxWait {
		m.MaxWait = waitingTicks
	}
	if waitingTicks == 0 {
		m.NoWaitBuyers++
	}
}

// RecordQueueLength folds the queue length left at the end of a tick.
func (m *Metrics) RecordQueueLength(n int) {
	if n > 0 {
		m.QueueNonemptyTicks++
		m.TotalQueueLengthSum += n
	}
	if n > m.MaxQueueLength {
		m.MaxQueueLength = n
	}
}

// Summary is the end-of-run report: raw counters plus derived averages.
type Summary struct {
	SimulationTime int `json:"simulation_time"`
	ExtraTicks     int `json:"extra_ticks"`
	NumTills       int `json:"num_tills"`

	BuyersArrived       int `json:"buyers_arrived"`
	BuyersServed        int `json:"buyers_served"`
	MaxQueueLength      int `json:"max_queue_length"`
	MaxWait             int `json:"max_wait"`
	TotalWaitTicks      int `json:"total_wait_ticks"`
	TotalQueueLengthSum int `json:"total_queue_length_sum"`
	QueueNonemptyTicks  int `json:"queue_nonempty_ticks"`
	NoWaitBuyers        int `json:"no_wait_buyers"`

	// AverageWait is TotalWaitTicks / BuyersArrived to 1 decimal place,
	// or 0 when nobody arrived.
	AverageWait float64 `json:"average_wait"`
	// AverageQueueLength is TotalQueueLengthSum / QueueNonemptyTicks to 2
	// decimal places. Nil when the queue was never occupied.
	AverageQueueLength *float64 `json:"average_queue_length,omitempty"`
}

// Summarize derives the averages and copies the counters into a Summary.
func (m *Metrics) Summarize(simulationTime, extraTicks, numTills int) Summary {
	s := Summary{
		SimulationTime:      simulationTime,
		ExtraTicks:          extraTicks,
		NumTills:            numTills,
		BuyersArrived:       m.BuyersArrived,
		BuyersServed:        m.BuyersServed,
		MaxQueueLength:      m.MaxQueueLength,
		MaxWait:             m.MaxWait,
		TotalWaitTicks:      m.TotalWaitTicks,
		TotalQueueLengthSum: m.TotalQueueLengthSum,
		QueueNonemptyTicks:  m.QueueNonemptyTicks,
		NoWaitBuyers:        m.NoWaitBuyers,
	}
	if m.BuyersArrived > 0 {
		s.AverageWait = RoundTo(float64(m.TotalWaitTicks)/float64(m.BuyersArrived), 1)
	}
	if m.QueueNonemptyTicks > 0 {
		avg := RoundTo(float64(m.TotalQueueLengthSum)/float64(m.QueueNonemptyTicks), 2)
		s.AverageQueueLength = &avg
	}
	return s
}

// RoundTo rounds v to the given number of decimal places, halves away from zero.
func RoundTo(v float64, places int) float64 {
	rounded, err := stats.Round(v, places)
	if err != nil {
		logrus.Warnf("cannot round %v: %v", v, err)
		return v
	}
	return rounded
}
