package error

import (
	"fmt"
	"strings"
)

// SpecError annotates a grammar error with the source it came from and the
// meta-token offset the parser stopped at. Offset is -1 when unknown.
type SpecError struct {
	Cause      error
	SourceName string
	Offset     int
	Detail     string
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, "token %v: ", e.Offset)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}
	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

type SpecErrors []*SpecError

func (e SpecErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}
