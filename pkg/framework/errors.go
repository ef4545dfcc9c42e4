package framework

import (
	"strconv"
	"strings"
)

// AggregatedError collects the failures of independent operations,
// e.g. the runners of a Loop or the registrars of a board.
type AggregatedError struct {
	Errors []error
}

// Error implements error.
func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(len(e.Errors)))
	sb.WriteString(" errors:")
	for _, err := range e.Errors {
		sb.WriteString("\n\t")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Add appends the non-nil errors.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// Aggregate returns nil if nothing was collected.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
