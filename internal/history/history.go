package history

import (
	"time"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

type Store interface {
	Init() error
	Deinit()

	// Save the outcome of applying triggers to a chart
	Save(record Record) error

	// Load previous applications for the chart, oldest first
	Load(sum string) ([]Record, error)
}

type Record struct {
	Sum        string // Hash of the chart bundle
	Chart      string // Chart path at the time of application
	Difficulty game.Difficulty
	Source     game.Source
	Path       string // Speeds file or metadata key
	Triggers   int
	AppliedAt  time.Time
}
