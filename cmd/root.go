package cmd

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queue-sim/queue-sim/sim"
	"github.com/queue-sim/queue-sim/sim/trace"
	"github.com/queue-sim/queue-sim/sim/workload"
)

var (
	// CLI flags for the run command
	simulationTime   int    // Nominal run length (in ticks)
	numTills         int    // Tills in use
	schedulePath     string // Arrival schedule file
	defaultsFilePath string // Path to defaults.yaml
	interactive      bool   // Prompt for settings before running
	logLevel         string // Log verbosity level
	quiet            bool   // Suppress the per-tick table
	resultsPath      string // File to save the summary JSON to
	traceLevel       string // Service trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "Discrete-time simulator for a queue served by a pool of tills",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queue simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, services, ticks", traceLevel)
		}

		defaults, err := resolveDefaults(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		limits := defaults.SimLimits()
		if err := limits.Validate(); err != nil {
			logrus.Fatalf("Invalid limits in %s: %v", defaultsFilePath, err)
		}

		horizon, tills := defaults.DefaultSettings()
		if cmd.Flags().Changed("horizon") {
			horizon = simulationTime
		}
		if cmd.Flags().Changed("tills") {
			tills = numTills
		}
		if interactive {
			horizon, tills, err = promptSettings(os.Stdin, os.Stdout, limits, horizon, tills)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		schedule, err := workload.LoadSchedule(schedulePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		cfg := sim.NewRunConfig(limits, horizon, tills)
		logrus.Infof("Starting simulation: horizon=%d ticks, tills=%d, arrivals=%d, limits=%+v",
			cfg.SimulationTime, cfg.NumTills, len(schedule), limits)

		startTime := time.Now()
		summary, st, err := runSimulation(cfg, schedule, os.Stdout)
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}

		if st.Enabled() {
			newConsoleReport(os.Stdout).PrintTraceSummary(trace.Summarize(st))
		}
		if resultsPath != "" {
			if err := saveResults(summary, resultsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// runSimulation runs one simulation, writing the report to out.
func runSimulation(cfg sim.RunConfig, schedule sim.Schedule, out io.Writer) (sim.Summary, *trace.SimulationTrace, error) {
	s, err := sim.NewSimulator(cfg, schedule)
	if err != nil {
		return sim.Summary{}, nil, err
	}
	report := newConsoleReport(out)
	if !quiet {
		report.PrintHeading()
		s.AddObserver(report)
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
	s.AddObserver(st)

	if err := s.Run(); err != nil {
		return sim.Summary{}, st, err
	}
	summary := s.Summary()
	report.PrintSummary(summary)
	return summary, st, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&simulationTime, "horizon", sim.DefaultSimulationTime, "Simulation run time (in ticks); overrides defaults.yaml")
	runCmd.Flags().IntVar(&numTills, "tills", sim.DefaultNumTills, "Number of tills in use; overrides defaults.yaml")
	runCmd.Flags().StringVar(&schedulePath, "schedule", "SimulationData.txt", "Arrival schedule file (.txt countdown:items, .csv or .yaml)")
	runCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to default limits and settings")
	runCmd.Flags().BoolVar(&interactive, "interactive", false, "Ask for simulation time and tills before running")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the final statistics")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save the summary JSON to")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Service trace level (none, services, ticks)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
