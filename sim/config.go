package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueOverflow is returned when a buyer arrives while the queue is full.
	ErrQueueOverflow = errors.New("queue overflow")
	// ErrConfigOutOfRange is returned when a run setting is outside its bounds.
	ErrConfigOutOfRange = errors.New("configuration out of range")
	// ErrScheduleTooLong is returned when the schedule holds more entries than the limits allow.
	ErrScheduleTooLong = errors.New("schedule too long")
)

// Default limits, matching the shop the simulator was first written for.
const (
	DefaultMaxQueueSize = 5
	DefaultMaxTills     = 2
	DefaultMaxTime      = 50
	DefaultServiceRate  = 3

	DefaultSimulationTime = 10
	DefaultNumTills       = 2
)

// Limits groups the fixed capacities of a simulator build.
// A Limits value is constructed once at startup and never mutated.
type Limits struct {
	MaxQueueSize int // buyers the queue can hold
	MaxTills     int // upper bound for NumTills
	MaxTime      int // upper bound for SimulationTime and for schedule length
	ServiceRate  int // items a till processes per tick
}

// NewLimits groups the four capacities into a Limits value.
func NewLimits(maxQueueSize, maxTills, maxTime, serviceRate int) Limits {
	return Limits{
		MaxQueueSize: maxQueueSize,
		MaxTills:     maxTills,
		MaxTime:      maxTime,
		ServiceRate:  serviceRate,
	}
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return NewLimits(DefaultMaxQueueSize, DefaultMaxTills, DefaultMaxTime, DefaultServiceRate)
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	fields := []struct {
		name string
		val  int
	}{
		{"max_queue_size", l.MaxQueueSize},
		{"max_tills", l.MaxTills},
		{"max_time", l.MaxTime},
		{"service_rate", l.ServiceRate},
	}
	for _, f := range fields {
		if f.val < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrConfigOutOfRange, f.name, f.val)
		}
	}
	return nil
}

// ServiceTicks returns how long a till is occupied by a buyer with the given
// item count. A buyer with an empty basket still holds a till for one tick.
func (l Limits) ServiceTicks(items int) int {
	return items/l.ServiceRate + 1
}

// RunConfig groups the per-run settings supplied by the configuration provider.
type RunConfig struct {
	Limits         Limits
	SimulationTime int // horizon in ticks, 1..Limits.MaxTime
	NumTills       int // tills in use, 1..Limits.MaxTills
}

// NewRunConfig groups limits and settings into a RunConfig.
func NewRunConfig(limits Limits, simulationTime, numTills int) RunConfig {
	return RunConfig{
		Limits:         limits,
		SimulationTime: simulationTime,
		NumTills:       numTills,
	}
}

// Validate checks limits and that both settings are within their bounds.
// Values are never clamped.
func (c RunConfig) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if err := CheckSimulationTime(c.Limits, c.SimulationTime); err != nil {
		return err
	}
	return CheckNumTills(c.Limits, c.NumTills)
}

// CheckSimulationTime reports whether t is a valid horizon under limits.
func CheckSimulationTime(limits Limits, t int) error {
	if t < 1 || t > limits.MaxTime {
		return fmt.Errorf("%w: simulation time must be in [1, %d], got %d", ErrConfigOutOfRange, limits.MaxTime, t)
	}
	return nil
}

// CheckNumTills reports whether n is a valid till count under limits.
func CheckNumTills(limits Limits, n int) error {
	if n < 1 || n > limits.MaxTills {
		return fmt.Errorf("%w: number of tills must be in [1, %d], got %d", ErrConfigOutOfRange, limits.MaxTills, n)
	}
	return nil
}
