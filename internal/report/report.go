// Package report renders an aggregate result for people reading the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/NivBraz/student-aggregator/internal/models"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Write renders result to w as "json" or "text".
func Write(w io.Writer, result *models.AggregateResult, format string, pretty bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result, pretty)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeJSON(w io.Writer, result *models.AggregateResult, pretty bool) error {
	var (
		output []byte
		err    error
	)
	if pretty {
		output, err = json.MarshalIndent(result, "", "    ")
	} else {
		output, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func writeText(w io.Writer, result *models.AggregateResult) error {
	gpaYear := strconv.Itoa(result.YearWithHighestOverallGPA)
	if !result.HighestGPAYearFound {
		gpaYear = "none (no positive GPA)"
	}
	inconsistent := strconv.Itoa(result.StudentIDMostInconsistent)
	if !result.MostInconsistentFound {
		inconsistent = "none (every GPA record is flat)"
	}

	ew := &errWriter{w: w}
	ew.printf("Year with the highest attendance: %d\n", result.YearWithHighestAttendance)
	ew.printf("Year with the highest overall GPA: %s\n", gpaYear)
	ew.printf("Top %d students by overall GPA:\n", len(result.Top10StudentIDsWithHighestGPA))
	for i, id := range result.Top10StudentIDsWithHighestGPA {
		ew.printf("  %2d. %d\n", i+1, id)
	}
	ew.printf("Student with the largest GPA spread: %s\n", inconsistent)
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
