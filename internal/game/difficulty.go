package game

import "strings"

type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Normal Difficulty = "NORMAL"
	Hard   Difficulty = "HARD"
	Expert Difficulty = "EXPERT"
	XD     Difficulty = "XD"
	RemiXD Difficulty = "REMIXD"

	// Legacy is not a playable difficulty, it selects the global tier
	// when editing bundles.
	Legacy Difficulty = "LEGACY"
)

var DefaultDifficulties = []Difficulty{Easy, Normal, Hard, Expert, XD, RemiXD}

// ParseDifficulty upper-cases and trims a user supplied name.
func ParseDifficulty(s string) Difficulty {
	return Difficulty(strings.ToUpper(strings.TrimSpace(s)))
}

// DifficultySet is the configured set of supported difficulties.
type DifficultySet map[Difficulty]struct{}

func NewDifficultySet(ds ...Difficulty) DifficultySet {
	set := make(DifficultySet, len(ds))
	for _, d := range ds {
		set[ParseDifficulty(string(d))] = struct{}{}
	}
	return set
}

func (s DifficultySet) Contains(d Difficulty) bool {
	_, ok := s[d]
	return ok
}
