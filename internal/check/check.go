package check

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

type Kind string

const (
	NegativeTime          Kind = "negative-time"
	NonPositiveSpeed      Kind = "non-positive-speed"
	OutOfOrder            Kind = "out-of-order"
	PastEnd               Kind = "past-end"
	DanglingInterpolation Kind = "dangling-interpolation"
)

// Issue is a warning about one trigger. Issues never change the triggers.
type Issue struct {
	Index   int // Position in the resolved list
	Kind    Kind
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("#%d %v: %v", i.Index, i.Kind, i.Message)
}

// Triggers lints a resolved trigger list. A zero length skips the song
// length check.
func Triggers(triggers []game.SpeedTrigger, length time.Duration) []Issue {
	issues := []Issue{}
	end := length.Seconds()

	for i, t := range triggers {
		if t.Time < 0 {
			issues = append(issues, Issue{i, NegativeTime, fmt.Sprintf("time %v is before the track starts", t.Time)})
		}
		if t.SpeedMultiplier <= 0 {
			issues = append(issues, Issue{i, NonPositiveSpeed, fmt.Sprintf("multiplier %v stops or reverses the track", t.SpeedMultiplier)})
		}
		if i > 0 && t.Time < triggers[i-1].Time {
			issues = append(issues, Issue{i, OutOfOrder, fmt.Sprintf("time %v is before the previous trigger at %v", t.Time, triggers[i-1].Time)})
		}
		if length > 0 && t.Time > end {
			issues = append(issues, Issue{i, PastEnd, fmt.Sprintf("time %v is after the song ends at %.2f", t.Time, end)})
		}
	}

	if n := len(triggers); n > 0 && triggers[n-1].InterpolateToNextTrigger {
		issues = append(issues, Issue{n - 1, DanglingInterpolation, "last trigger interpolates but nothing follows"})
	}
	return issues
}
