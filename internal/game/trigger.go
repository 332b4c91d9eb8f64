package game

// SpeedTrigger is one timed speed change on the track.
type SpeedTrigger struct {
	Time                     float64 `json:"Time"`            // Seconds from the start of the track
	SpeedMultiplier          float64 `json:"SpeedMultiplier"` // Factor applied to the initial track speed
	InterpolateToNextTrigger bool    `json:"InterpolateToNextTrigger"`
}

// TriggerData is the object stored under the embedded metadata keys.
// encoding/json matches field names case-insensitively, so the camelCase
// spelling written by some tools decodes as well.
type TriggerData struct {
	Triggers []SpeedTrigger `json:"Triggers"`
}
