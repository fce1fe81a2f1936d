// Package aggregator computes the student aggregate statistics.
//
// All functions are pure. Except for Validate and Aggregate they assume
// every student has already passed Validate.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/NivBraz/student-aggregator/internal/models"
	"github.com/NivBraz/student-aggregator/pkg/tally"
)

// DefaultTopCount is the number of ids reported by Top10ByGPA.
const DefaultTopCount = 10

// Aggregate validates students and computes the aggregate result for them.
func Aggregate(students []models.Student, submitter models.Submitter) (*models.AggregateResult, error) {
	return AggregateTop(students, submitter, DefaultTopCount)
}

// AggregateTop is Aggregate with a configurable number of top students.
func AggregateTop(students []models.Student, submitter models.Submitter, topCount int) (*models.AggregateResult, error) {
	if err := Validate(students); err != nil {
		return nil, err
	}
	if topCount <= 0 {
		return nil, fmt.Errorf("top count must be positive, got %d", topCount)
	}

	gpaYear, gpaYearFound := YearWithHighestOverallGPA(students)
	inconsistent, inconsistentFound := MostInconsistentStudent(students)

	return &models.AggregateResult{
		YourName:                      submitter.Name,
		YourEmail:                     submitter.Email,
		YearWithHighestAttendance:     HighestAttendanceYear(students),
		YearWithHighestOverallGPA:     gpaYear,
		Top10StudentIDsWithHighestGPA: TopByGPA(students, topCount),
		StudentIDMostInconsistent:     inconsistent,
		HighestGPAYearFound:           gpaYearFound,
		MostInconsistentFound:         inconsistentFound,
	}, nil
}

// Validate checks that students is non-empty and every record is well formed.
func Validate(students []models.Student) error {
	if len(students) == 0 {
		return ErrEmptyInput
	}
	for _, s := range students {
		switch {
		case len(s.GPARecord) == 0:
			return &MalformedStudentError{StudentID: s.ID, Reason: "empty GPA record"}
		case s.StartYear > s.EndYear:
			return &MalformedStudentError{
				StudentID: s.ID,
				Reason:    fmt.Sprintf("start year %d is after end year %d", s.StartYear, s.EndYear),
			}
		case len(s.GPARecord) != s.YearsAttended():
			return &MalformedStudentError{
				StudentID: s.ID,
				Reason:    fmt.Sprintf("%d GPA values for %d attended years", len(s.GPARecord), s.YearsAttended()),
			}
		}
	}
	return nil
}

// HighestAttendanceYear returns the year attended by the most students.
// Equal counts resolve to the earliest year.
func HighestAttendanceYear(students []models.Student) int {
	years := tally.New()
	for _, s := range students {
		years.AddRange(s.StartYear, s.EndYear)
	}
	year, _, _ := years.Max()
	return year
}

// YearWithHighestOverallGPA returns the year in which the student with the
// highest overall GPA reached it. Only GPAs above zero are considered; the
// first student wins a tie. ok is false when no student has a positive GPA.
func YearWithHighestOverallGPA(students []models.Student) (year int, ok bool) {
	var best float64
	for _, s := range students {
		if gpa := s.OverallGPA(); gpa > best {
			best = gpa
			year = s.BestYear()
			ok = true
		}
	}
	return year, ok
}

// Top10ByGPA returns the ids of the ten students with the highest overall GPA.
func Top10ByGPA(students []models.Student) []int {
	return TopByGPA(students, DefaultTopCount)
}

// TopByGPA returns up to n student ids ordered by overall GPA, highest first.
// Students with equal GPA keep their input order.
func TopByGPA(students []models.Student, n int) []int {
	sorted := make([]models.Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallGPA() > sorted[j].OverallGPA()
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	ids := make([]int, 0, len(sorted))
	for _, s := range sorted {
		ids = append(ids, s.ID)
	}
	return ids
}

// MostInconsistentStudent returns the id of the student with the largest
// spread between lowest and highest GPA. The first student wins a tie.
// ok is false, and id is 0, when no student has a positive spread.
func MostInconsistentStudent(students []models.Student) (id int, ok bool) {
	var widest float64
	for _, s := range students {
		if spread := s.Spread(); spread > widest {
			widest = spread
			id = s.ID
			ok = true
		}
	}
	return id, ok
}
