package spectral

import (
	"errors"
	"fmt"
	"time"
)

// ErrComparability is matched by every *ComparabilityError.
var ErrComparability = errors.New("traces are not comparable")

// ComparabilityReason says which precondition failed.
type ComparabilityReason int

const (
	StartTimeMismatch ComparabilityReason = iota + 1
	FrequencyMismatch
)

func (r ComparabilityReason) String() string {
	switch r {
	case StartTimeMismatch:
		return "start time mismatch"
	case FrequencyMismatch:
		return "frequency mismatch"
	default:
		return "unknown"
	}
}

// ComparabilityError reports that two frequency traces cannot be combined.
type ComparabilityError struct {
	Reason ComparabilityReason

	StartA, StartB time.Time

	// Bin is the first differing frequency index, or -1 when the axes
	// differ in length.
	Bin int
}

func (e *ComparabilityError) Error() string {
	switch e.Reason {
	case StartTimeMismatch:
		return fmt.Sprintf("traces do not have the same starttime (%s != %s)",
			e.StartA.Format(time.RFC3339Nano), e.StartB.Format(time.RFC3339Nano))
	case FrequencyMismatch:
		if e.Bin < 0 {
			return "traces do not have the same frequencies (axis lengths differ)"
		}
		return fmt.Sprintf("traces do not have the same frequencies (first difference at bin %d)", e.Bin)
	default:
		return ErrComparability.Error()
	}
}

// Is lets errors.Is(err, ErrComparability) match.
func (e *ComparabilityError) Is(target error) bool {
	return target == ErrComparability
}
