package reconcile

import (
	"fmt"
	"time"
)

// Speed is the candidate's speed relative to the reference.
// Known is false when the reference duration is not positive.
type Speed struct {
	Ratio float64
	Known bool
}

// RelativeSpeed returns durationA / durationB.
// A non-positive reference duration makes the ratio unknown; a non-positive
// candidate duration with a positive reference yields zero.
func RelativeSpeed(durationA, durationB time.Duration) Speed {
	if durationA <= 0 {
		return Speed{}
	}
	if durationB <= 0 {
		return Speed{Ratio: 0, Known: true}
	}
	return Speed{Ratio: durationA.Seconds() / durationB.Seconds(), Known: true}
}

// String renders the speed for the timing table: "2.0x faster" or "?".
func (s Speed) String() string {
	if !s.Known {
		return "?"
	}
	return fmt.Sprintf("%.1fx faster", s.Ratio)
}
