package aggregator

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there are no students to aggregate.
var ErrEmptyInput = errors.New("no students to aggregate")

// ErrMalformedStudent is matched by every *MalformedStudentError.
var ErrMalformedStudent = errors.New("malformed student record")

// MalformedStudentError reports a student record the aggregates cannot be
// computed from.
type MalformedStudentError struct {
	StudentID int
	Reason    string
}

func (e *MalformedStudentError) Error() string {
	return fmt.Sprintf("student %d: %s", e.StudentID, e.Reason)
}

func (e *MalformedStudentError) Is(target error) bool {
	return target == ErrMalformedStudent
}
