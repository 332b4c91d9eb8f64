package resolver

import (
	"fmt"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

const (
	DefaultExtension = ".speeds"
	DefaultKeyPrefix = "SpeedHelper_SpeedTriggers"
)

// Metadata is the chart's embedded key/value store.
type Metadata interface {
	HasValue(key string) bool
	Value(key string) (string, error)
}

type Resolver interface {
	// Resolve picks the first available tier for the track. Finding nothing
	// is not an error, it returns a result with game.SourceNone.
	Resolve(track Track) (Result, error)
}

// Config is owned by the caller. Enabled replaces the plugin's global
// on/off toggle.
type Config struct {
	Enabled      bool
	Difficulties game.DifficultySet
	Extension    string
	KeyPrefix    string
}

func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Difficulties: game.NewDifficultySet(game.DefaultDifficulties...),
		Extension:    DefaultExtension,
		KeyPrefix:    DefaultKeyPrefix,
	}
}

type Track struct {
	ChartPath  string
	Difficulty game.Difficulty
	Metadata   Metadata // May be nil when the chart has no readable bundle
}

type Result struct {
	Source   game.Source
	Path     string // File or metadata key the triggers came from
	Triggers []game.SpeedTrigger
}

// SourceError is a failure reading a tier that exists. It stops resolution.
type SourceError struct {
	Source game.Source
	Path   string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("unable to load %v %v: %v", e.Source, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
