package game

import "errors"

var ErrNoInitialSpeed = errors.New("timeline has no initial speed")

// TrackSpeed is a keyframe of the host's speed spline.
type TrackSpeed struct {
	Time                   float64 // Seconds from the start of the track
	Speed                  float64 // Absolute speed, not a multiplier
	InterpolateToNextSpeed bool
}

// Timeline is the part of the host's spline data that speed triggers feed.
type Timeline struct {
	Speeds []TrackSpeed
	Turns  int // Number of turn segments, the host needs two to bend a speed spline
}

// NewTimeline returns a timeline holding only the host's starting speed.
func NewTimeline(initialSpeed float64) *Timeline {
	return &Timeline{
		Speeds: []TrackSpeed{{Time: 0, Speed: initialSpeed}},
		Turns:  1,
	}
}

// Apply appends triggers relative to the first keyframe's speed and returns
// how many were appended. The initial speed is read once, before appending.
func (t *Timeline) Apply(triggers []SpeedTrigger) (int, error) {
	if len(t.Speeds) == 0 {
		return 0, ErrNoInitialSpeed
	}
	if len(triggers) == 0 {
		return 0, nil
	}
	initialSpeed := t.Speeds[0].Speed

	for _, trigger := range triggers {
		t.Speeds = append(t.Speeds, TrackSpeed{
			Time:                   trigger.Time,
			Speed:                  trigger.SpeedMultiplier * initialSpeed,
			InterpolateToNextSpeed: trigger.InterpolateToNextTrigger,
		})
	}

	if t.Turns == 1 {
		t.Turns++
	}
	return len(triggers), nil
}
