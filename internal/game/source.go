package game

// Source tags which tier a trigger list was resolved from.
type Source int

const (
	SourceNone Source = iota
	SourceDifficultyFile
	SourceGlobalFile
	SourceDifficultyEmbedded
	SourceGlobalEmbedded
)

var sourceNames = map[Source]string{
	SourceNone:               "none",
	SourceDifficultyFile:     "difficulty-file",
	SourceGlobalFile:         "global-file",
	SourceDifficultyEmbedded: "difficulty-embedded",
	SourceGlobalEmbedded:     "global-embedded",
}

func (s Source) String() string {
	name, ok := sourceNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

func (s Source) IsFile() bool {
	return s == SourceDifficultyFile || s == SourceGlobalFile
}

func (s Source) IsEmbedded() bool {
	return s == SourceDifficultyEmbedded || s == SourceGlobalEmbedded
}

// ParseSource is the inverse of String, used when reading history rows.
func ParseSource(name string) Source {
	for s, n := range sourceNames {
		if n == name {
			return s
		}
	}
	return SourceNone
}
