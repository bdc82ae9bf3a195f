// Package testutil provides shared test infrastructure for the queue simulator.
// It holds the golden scenario types and assertion helpers used by sim/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenArrival is one schedule entry of a golden scenario.
type GoldenArrival struct {
	Countdown int `json:"countdown"`
	Items     int `json:"items"`
}

// GoldenTestCase represents a single scenario from the golden dataset.
type GoldenTestCase struct {
	Name           string          `json:"name"`
	MaxQueueSize   int             `json:"max_queue_size"`
	MaxTills       int             `json:"max_tills"`
	MaxTime        int             `json:"max_time"`
	ServiceRate    int             `json:"service_rate"`
	SimulationTime int             `json:"simulation_time"`
	NumTills       int             `json:"num_tills"`
	Arrivals       []GoldenArrival `json:"arrivals"`
	Metrics        GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics represents the expected statistics of a golden scenario.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	BuyersArrived       int `json:"buyers_arrived"`
	MaxQueueLength      int `json:"max_queue_length"`
	MaxWait             int `json:"max_wait"`
	TotalWaitTicks      int `json:"total_wait_ticks"`
	TotalQueueLengthSum int `json:"total_queue_length_sum"`
	QueueNonemptyTicks  int `json:"queue_nonempty_ticks"`
	NoWaitBuyers        int `json:"no_wait_buyers"`
	ExtraTicks          int `json:"extra_ticks"`

	// Rounded averages; AverageQueueLength is absent when the queue was never occupied
	AverageWait        float64  `json:"average_wait"`
	AverageQueueLength *float64 `json:"average_queue_length"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
