package srtb

import (
	"encoding/json"
	"fmt"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

// Triggers decodes the trigger object stored under key.
func (b *Bundle) Triggers(key string) (*game.TriggerData, error) {
	val, err := b.Value(key)
	if nil != err {
		return nil, err
	}
	var data game.TriggerData
	if err := json.Unmarshal([]byte(val), &data); nil != err {
		return nil, fmt.Errorf("unable to decode %v: %w", key, err)
	}
	return &data, nil
}

// SetTriggers embeds triggers under key, replacing anything already there.
func (b *Bundle) SetTriggers(key string, triggers []game.SpeedTrigger) error {
	if nil == triggers {
		triggers = []game.SpeedTrigger{}
	}
	val, err := json.Marshal(game.TriggerData{Triggers: triggers})
	if nil != err {
		return fmt.Errorf("unable to encode triggers: %w", err)
	}
	return b.SetValue(key, string(val))
}
