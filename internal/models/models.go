package models

import "fmt"

// Student is a single record of the students endpoint.
type Student struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartYear int       `json:"startYear"`
	EndYear   int       `json:"endYear"`
	GPARecord []float64 `json:"gpaRecord"`
}

// OverallGPA returns the highest value of the GPA record.
// The record must not be empty.
func (s Student) OverallGPA() float64 {
	max := s.GPARecord[0]
	for _, gpa := range s.GPARecord[1:] {
		if gpa > max {
			max = gpa
		}
	}
	return max
}

// BestYear returns the year in which the overall GPA was first reached.
func (s Student) BestYear() int {
	best := 0
	for i, gpa := range s.GPARecord {
		if gpa > s.GPARecord[best] {
			best = i
		}
	}
	return s.StartYear + best
}

// Spread returns max(gpaRecord) - min(gpaRecord).
func (s Student) Spread() float64 {
	min, max := s.GPARecord[0], s.GPARecord[0]
	for _, gpa := range s.GPARecord[1:] {
		if gpa < min {
			min = gpa
		}
		if gpa > max {
			max = gpa
		}
	}
	return max - min
}

// YearsAttended returns the length of the inclusive [StartYear, EndYear] span.
func (s Student) YearsAttended() int {
	return s.EndYear - s.StartYear + 1
}

func (s Student) String() string {
	return fmt.Sprintf("student %d (%s, %d-%d)", s.ID, s.Name, s.StartYear, s.EndYear)
}

// Submitter identifies who submits the aggregate.
type Submitter struct {
	Name  string
	Email string
}

// AggregateResult is the body sent to the submission endpoint.
type AggregateResult struct {
	YourName                      string `json:"yourName"`
	YourEmail                     string `json:"yourEmail"`
	YearWithHighestAttendance     int    `json:"yearWithHighestAttendance"`
	YearWithHighestOverallGPA     int    `json:"yearWithHighestOverallGpa"`
	Top10StudentIDsWithHighestGPA []int  `json:"top10StudentIdsWithHighestGpa"`
	StudentIDMostInconsistent     int    `json:"studentIdMostInconsistent"`

	// Not part of the wire format. False when the matching field holds the
	// zero fallback instead of a real value.
	HighestGPAYearFound   bool `json:"-"`
	MostInconsistentFound bool `json:"-"`
}
