package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queue-sim/queue-sim/sim/workload"
)

var (
	convertInput  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an arrival schedule between text, CSV and YAML",
	Long:  "Convert an arrival schedule between formats. Formats are picked from the file extensions (.csv, .yaml/.yml, anything else is countdown:items text). Without --output the result is written to stdout as YAML.",
	Run: func(cmd *cobra.Command, args []string) {
		schedule, err := workload.LoadSchedule(convertInput)
		if err != nil {
			logrus.Fatalf("Schedule conversion failed: %v", err)
		}
		if convertOutput == "" {
			if err := workload.WriteSchedule(os.Stdout, schedule, workload.FormatYAML); err != nil {
				logrus.Fatalf("Schedule conversion failed: %v", err)
			}
			return
		}
		if err := workload.ExportSchedule(schedule, convertOutput); err != nil {
			logrus.Fatalf("Schedule conversion failed: %v", err)
		}
		logrus.Infof("Wrote %d arrivals to %s", len(schedule), convertOutput)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "Schedule file to read")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "Schedule file to write (stdout YAML if empty)")
	_ = convertCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(convertCmd)
}
