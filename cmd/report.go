package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/queue-sim/queue-sim/sim"
	"github.com/queue-sim/queue-sim/sim/trace"
)

// consoleReport prints the per-tick table and the closing statistics.
// It implements sim.TickObserver.
type consoleReport struct {
	w io.Writer
}

func newConsoleReport(w io.Writer) *consoleReport {
	return &consoleReport{w: w}
}

// PrintHeading writes the column headings of the per-tick table.
func (r *consoleReport) PrintHeading() {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Time Buyer  | Start Till Serve | Till Time Time Time |      Queue")
	fmt.Fprintln(r.w, "     enters | serve      time  | num- idle busy ser- | Buyer Wait Items")
	fmt.Fprintln(r.w, "     (items)| buyer            | ber            ving | ID    time in")
	fmt.Fprintln(r.w, "            |                  |                     |            basket")
}

// ObserveTick writes one block of the table.
func (r *consoleReport) ObserveTick(snap sim.TickSnapshot) {
	arrivals := make([]string, 0, len(snap.Arrivals))
	for _, a := range snap.Arrivals {
		arrivals = append(arrivals, fmt.Sprintf("  %s(%d)", a.BuyerID, a.Items))
	}
	fmt.Fprintf(r.w, "%3d%s\n", snap.Tick, strings.Join(arrivals, ""))

	for _, a := range snap.Assignments {
		fmt.Fprintf(r.w, "%17s%6d%6d\n", a.BuyerID, a.TillID, a.ServiceTicks)
	}
	for _, t := range snap.Tills {
		fmt.Fprintf(r.w, "%36d%5d%5d%6d\n", t.ID, t.IdleTicks, t.BusyTicks, t.RemainingTicks)
	}
	fmt.Fprintln(r.w, "                                                    ** Start of queue **")
	for _, b := range snap.Queue {
		fmt.Fprintf(r.w, "%57s%7d%6d\n", b.BuyerID, b.WaitingTicks, b.Items)
	}
	fmt.Fprintln(r.w, "                                                    *** End of queue ***")
	fmt.Fprintln(r.w, "------------------------------------------------------------------------")
}

// PrintSummary writes the closing statistics block.
func (r *consoleReport) PrintSummary(s sim.Summary) {
	fmt.Fprintln(r.w, "The simulation statistics are:")
	fmt.Fprintln(r.w, "==============================")
	fmt.Fprintf(r.w, "The maximum queue length was: %d buyers\n", s.MaxQueueLength)
	fmt.Fprintf(r.w, "The maximum waiting time was: %d time units\n", s.MaxWait)
	fmt.Fprintf(r.w, "%s buyers arrived during %s time units\n",
		humanize.Comma(int64(s.BuyersArrived)), humanize.Comma(int64(s.SimulationTime)))
	fmt.Fprintf(r.w, "Extra time needed to clear the queue and tills: %s time units\n",
		humanize.Comma(int64(s.ExtraTicks)))
	fmt.Fprintf(r.w, "The average waiting time was: %s time units\n", formatAverage(s.AverageWait))
	if s.AverageQueueLength != nil {
		fmt.Fprintf(r.w, "The average queue length was: %s buyers\n", formatAverage(*s.AverageQueueLength))
	}
	fmt.Fprintf(r.w, "%s buyers did not need to queue\n", humanize.Comma(int64(s.NoWaitBuyers)))
}

// PrintTraceSummary writes the wait distribution and per-till figures of a trace.
func (r *consoleReport) PrintTraceSummary(ts *trace.TraceSummary) {
	fmt.Fprintln(r.w, "=== Trace Summary ===")
	fmt.Fprintf(r.w, "Buyers served       : %d\n", ts.TotalServices)
	fmt.Fprintf(r.w, "Mean wait           : %.2f time units\n", ts.MeanWait)
	fmt.Fprintf(r.w, "Median wait         : %.2f time units\n", ts.MedianWait)
	fmt.Fprintf(r.w, "P90 wait            : %.2f time units\n", ts.P90Wait)
	ids := make([]int, 0, len(ts.TillUtilization))
	for id := range ts.TillUtilization {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(r.w, "Till %d              : %d buyers, %.0f%% busy\n", id, ts.ServicesPerTill[id], ts.TillUtilization[id]*100)
	}
}

// formatAverage prints an already-rounded average without trailing zeros.
func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// saveResults writes the summary as indented JSON to path.
func saveResults(s sim.Summary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return nil
}
