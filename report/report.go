// Package report turns the TSV rows appended by bench into comparison
// tables.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// HitProbabilities are the query hit rates bench measures, in column order.
var HitProbabilities = []float64{1.0, 0.95, 0.75, 0.5, 0.25, 0.05, 0.0}

// Row is one bench run: table build cost followed by lookup throughput
// for each hit probability.
type Row struct {
	Size          int64     `json:"size"`
	BuildMs       int64     `json:"build_ms"`
	MaxRSSBytes   uint64    `json:"max_rss_bytes"`
	LookupsPerSec []float64 `json:"lookups_per_sec"`
}

// Parse reads tab-separated rows of the form
// size, build ms, max RSS, then one lookups/sec column per hit probability.
// Blank lines are skipped. Rows with missing query columns are accepted,
// since bench appends the query columns as it goes.
func Parse(r io.Reader) ([]Row, error) {
	var rows []Row

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		row, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return rows, nil
}

func parseRow(fields []string) (Row, error) {
	if len(fields) < 3 {
		return Row{}, fmt.Errorf("want at least 3 columns, got %d", len(fields))
	}

	if len(fields) > 3+len(HitProbabilities) {
		return Row{}, fmt.Errorf(
			"want at most %d columns, got %d",
			3+len(HitProbabilities), len(fields),
		)
	}

	var (
		row Row
		err error
	)

	if row.Size, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
		return Row{}, fmt.Errorf("size: %w", err)
	}

	if row.BuildMs, err = strconv.ParseInt(fields[1], 10, 64); err != nil {
		return Row{}, fmt.Errorf("build time: %w", err)
	}

	if row.MaxRSSBytes, err = strconv.ParseUint(fields[2], 10, 64); err != nil {
		return Row{}, fmt.Errorf("max rss: %w", err)
	}

	for i, f := range fields[3:] {
		qps, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Row{}, fmt.Errorf(
				"lookups/sec at hit prob %g: %w", HitProbabilities[i], err,
			)
		}

		row.LookupsPerSec = append(row.LookupsPerSec, qps)
	}

	return row, nil
}

// Generate writes a markdown table for the given rows.
func Generate(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	header := []string{"Size", "Build", "Max RSS"}
	for _, hp := range HitProbabilities {
		header = append(header, fmt.Sprintf("Lookups/s @%g", hp))
	}

	fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))

	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", len(h))
	}

	fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))

	for _, r := range rows {
		cells := []string{
			strconv.FormatInt(r.Size, 10),
			formatMs(r.BuildMs),
			formatBytes(r.MaxRSSBytes),
		}

		for i := range HitProbabilities {
			if i < len(r.LookupsPerSec) {
				cells = append(cells, formatRate(r.LookupsPerSec[i]))
			} else {
				cells = append(cells, "-")
			}
		}

		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}

	return nil
}

// GenerateJSON writes rows as JSON to w.
func GenerateJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}

func formatMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	return trimFloat(size) + " " + units[unit]
}

func formatRate(qps float64) string {
	switch {
	case qps >= 1e9:
		return trimFloat(qps/1e9) + "G"
	case qps >= 1e6:
		return trimFloat(qps/1e6) + "M"
	case qps >= 1e3:
		return trimFloat(qps/1e3) + "K"
	default:
		return trimFloat(qps)
	}
}

func trimFloat(f float64) string {
	formatted := fmt.Sprintf("%.1f", f)
	formatted = strings.TrimRight(formatted, "0")

	return strings.TrimRight(formatted, ".")
}
