package sim

import "fmt"

// Arrival is one schedule entry: the buyer arrives Countdown ticks after the
// previous buyer (or after tick 0 for the first) carrying Items items.
type Arrival struct {
	Countdown int `yaml:"countdown"`
	Items     int `yaml:"items"`
}

// Schedule is the ordered, finite list of arrivals for a run.
type Schedule []Arrival

// Validate checks that every entry has non-negative fields.
func (s Schedule) Validate() error {
	for i, a := range s {
		if a.Countdown < 0 {
			return fmt.Errorf("arrival %d: countdown must be non-negative, got %d", i+1, a.Countdown)
		}
		if a.Items < 0 {
			return fmt.Errorf("arrival %d: items must be non-negative, got %d", i+1, a.Items)
		}
	}
	return nil
}

// ArrivalFeed walks a Schedule one tick at a time.
// It keeps a single countdown: when the countdown is zero the next buyer is
// admitted and the countdown reloads from the following entry.
type ArrivalFeed struct {
	schedule  Schedule
	next      int // index of the next entry to admit
	countdown int
}

// NewArrivalFeed positions a feed at the start of s.
func NewArrivalFeed(s Schedule) *ArrivalFeed {
	f := &ArrivalFeed{schedule: s}
	if len(s) > 0 {
		f.countdown = s[0].Countdown
	}
	return f
}

// Exhausted reports whether every entry has been admitted.
func (f *ArrivalFeed) Exhausted() bool {
	return f.next >= len(f.schedule)
}

// Admitted returns the number of entries handed out so far.
func (f *ArrivalFeed) Admitted() int {
	return f.next
}

// Countdown returns the ticks left until the next arrival.
func (f *ArrivalFeed) Countdown() int {
	return f.countdown
}

// Tick returns the arrivals due this tick, in schedule order, and then
// counts one tick down. Several entries with a zero countdown arrive together.
func (f *ArrivalFeed) Tick() []Arrival {
	var due []Arrival
	for !f.Exhausted() && f.countdown == 0 {
		due = append(due, f.schedule[f.next])
		f.next++
		if !f.Exhausted() {
			f.countdown = f.schedule[f.next].Countdown
		}
	}
	if !f.Exhausted() {
		f.countdown--
	}
	return due
}
