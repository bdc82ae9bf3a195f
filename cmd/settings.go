package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/queue-sim/queue-sim/sim"
)

// promptSettings shows the current settings and lets the user change them.
// Each value is asked for again until it is within its bounds.
// Returns an error only if input runs out.
func promptSettings(in io.Reader, out io.Writer, limits sim.Limits, simulationTime, tills int) (int, int, error) {
	fmt.Fprintln(out, "Settings set for this simulation:")
	fmt.Fprintln(out, "=================================")
	fmt.Fprintf(out, "Simulation time: %d\n", simulationTime)
	fmt.Fprintf(out, "Tills operating: %d\n", tills)
	fmt.Fprintln(out, "=================================")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Do you wish to change the settings?  Y/N: ")

	scanner := bufio.NewScanner(in)
	answer, err := readLine(scanner)
	if err != nil {
		return 0, 0, err
	}
	if !strings.EqualFold(answer, "y") {
		return simulationTime, tills, nil
	}

	simulationTime, err = promptInt(scanner, out,
		fmt.Sprintf("Maximum simulation time is %d time units", limits.MaxTime),
		"Simulation run time: ",
		func(v int) error { return sim.CheckSimulationTime(limits, v) })
	if err != nil {
		return 0, 0, err
	}
	tills, err = promptInt(scanner, out,
		fmt.Sprintf("Maximum number of tills is %d", limits.MaxTills),
		"Number of tills in use: ",
		func(v int) error { return sim.CheckNumTills(limits, v) })
	if err != nil {
		return 0, 0, err
	}
	return simulationTime, tills, nil
}

func promptInt(scanner *bufio.Scanner, out io.Writer, hint, prompt string, check func(int) error) (int, error) {
	for {
		fmt.Fprintln(out, hint)
		fmt.Fprint(out, prompt)
		line, err := readLine(scanner)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "%q is not a whole number\n", line)
			continue
		}
		if err := check(v); err != nil {
			continue
		}
		return v, nil
	}
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading settings: %w", err)
		}
		return "", fmt.Errorf("reading settings: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(scanner.Text()), nil
}
