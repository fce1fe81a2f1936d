package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NivBraz/student-aggregator/internal/models"
)

func sampleResult() *models.AggregateResult {
	return &models.AggregateResult{
		YourName:                      "Jane Doe",
		YourEmail:                     "jane@example.com",
		YearWithHighestAttendance:     2010,
		YearWithHighestOverallGPA:     2011,
		Top10StudentIDsWithHighestGPA: []int{4, 2, 9},
		StudentIDMostInconsistent:     2,
		HighestGPAYearFound:           true,
		MostInconsistentFound:         true,
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "Jane Doe", decoded["yourName"])
	assert.Equal(t, "jane@example.com", decoded["yourEmail"])
	assert.EqualValues(t, 2010, decoded["yearWithHighestAttendance"])
	assert.EqualValues(t, 2011, decoded["yearWithHighestOverallGpa"])
	assert.Len(t, decoded["top10StudentIdsWithHighestGpa"], 3)
	assert.EqualValues(t, 2, decoded["studentIdMostInconsistent"])
	assert.NotContains(t, decoded, "MostInconsistentFound")
	assert.Len(t, decoded, 6)
}

func TestWriteJSONPretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON, true))
	assert.Contains(t, buf.String(), "\n    \"yourName\": \"Jane Doe\"")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatText, false))

	out := buf.String()
	assert.Contains(t, out, "Year with the highest attendance: 2010\n")
	assert.Contains(t, out, "Year with the highest overall GPA: 2011\n")
	assert.Contains(t, out, "Top 3 students by overall GPA:\n")
	assert.Contains(t, out, "   1. 4\n")
	assert.Contains(t, out, "   3. 9\n")
	assert.Contains(t, out, "largest GPA spread: 2\n")
}

func TestWriteTextFallbacks(t *testing.T) {
	result := sampleResult()
	result.HighestGPAYearFound = false
	result.MostInconsistentFound = false
	result.StudentIDMostInconsistent = 0

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result, FormatText, false))
	assert.True(t, strings.Contains(buf.String(), "every GPA record is flat"))
	assert.True(t, strings.Contains(buf.String(), "no positive GPA"))
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleResult(), "xml", false))
}
