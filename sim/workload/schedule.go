// Package workload loads and exports arrival schedules.
//
// Three on-disk formats are supported, selected by file extension:
//   - text (default): one "countdown:items" pair per line, as in
//     SimulationData.txt. Blank lines and lines starting with '#' are skipped.
//   - CSV (.csv): a "countdown,items" header row followed by one row per buyer.
//   - YAML (.yaml, .yml): an "arrivals" list of {countdown, items} maps,
//     parsed strictly so that typos are rejected.
package workload

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/queue-sim/queue-sim/sim"
)

// Format names a schedule file layout.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// csvColumns is the header row of a CSV schedule.
var csvColumns = []string{"countdown", "items"}

// scheduleFile is the YAML document layout.
type scheduleFile struct {
	Arrivals []sim.Arrival `yaml:"arrivals"`
}

// FormatFromPath picks the schedule format from a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// LoadSchedule reads and validates the schedule at path.
func LoadSchedule(path string) (sim.Schedule, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	schedule, err := ReadSchedule(file, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("reading schedule %s: %w", path, err)
	}
	return schedule, nil
}

// ReadSchedule parses a schedule in the given format and validates it.
func ReadSchedule(r io.Reader, format Format) (sim.Schedule, error) {
	var (
		schedule sim.Schedule
		err      error
	)
	switch format {
	case FormatText:
		schedule, err = readText(r)
	case FormatCSV:
		schedule, err = readCSV(r)
	case FormatYAML:
		schedule, err = readYAML(r)
	default:
		return nil, fmt.Errorf("unknown schedule format %q; valid: text, csv, yaml", format)
	}
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

func readText(r io.Reader) (sim.Schedule, error) {
	var schedule sim.Schedule
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		countdownText, itemsText, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected countdown:items, got %q", lineNo, line)
		}
		a, err := parseArrival(countdownText, itemsText)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		schedule = append(schedule, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	return schedule, nil
}

func readCSV(r io.Reader) (sim.Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i, col := range csvColumns {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return nil, fmt.Errorf("CSV header column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	var schedule sim.Schedule
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}
		a, err := parseArrival(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", row, err)
		}
		schedule = append(schedule, a)
	}
	return schedule, nil
}

func readYAML(r io.Reader) (sim.Schedule, error) {
	var doc scheduleFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing YAML schedule: %w", err)
	}
	return doc.Arrivals, nil
}

func parseArrival(countdownText, itemsText string) (sim.Arrival, error) {
	countdown, err := strconv.Atoi(strings.TrimSpace(countdownText))
	if err != nil {
		return sim.Arrival{}, fmt.Errorf("invalid countdown %q: %w", countdownText, err)
	}
	items, err := strconv.Atoi(strings.TrimSpace(itemsText))
	if err != nil {
		return sim.Arrival{}, fmt.Errorf("invalid item count %q: %w", itemsText, err)
	}
	if countdown < 0 || items < 0 {
		return sim.Arrival{}, fmt.Errorf("countdown and items must be non-negative, got %d:%d", countdown, items)
	}
	return sim.Arrival{Countdown: countdown, Items: items}, nil
}

// ExportSchedule writes the schedule to path in the format implied by its extension.
func ExportSchedule(schedule sim.Schedule, path string) error {
	var buf bytes.Buffer
	if err := WriteSchedule(&buf, schedule, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

// WriteSchedule encodes the schedule in the given format.
func WriteSchedule(w io.Writer, schedule sim.Schedule, format Format) error {
	switch format {
	case FormatText:
		bw := bufio.NewWriter(w)
		for _, a := range schedule {
			if _, err := fmt.Fprintf(bw, "%d:%d\n", a.Countdown, a.Items); err != nil {
				return fmt.Errorf("writing schedule line: %w", err)
			}
		}
		return bw.Flush()
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write(csvColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
		for i, a := range schedule {
			if err := writer.Write([]string{strconv.Itoa(a.Countdown), strconv.Itoa(a.Items)}); err != nil {
				return fmt.Errorf("writing CSV row %d: %w", i+2, err)
			}
		}
		writer.Flush()
		return writer.Error()
	case FormatYAML:
		data, err := yaml.Marshal(scheduleFile{Arrivals: schedule})
		if err != nil {
			return fmt.Errorf("marshaling schedule: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown schedule format %q; valid: text, csv, yaml", format)
	}
}
