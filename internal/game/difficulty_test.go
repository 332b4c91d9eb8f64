package game

import "testing"

var sourceNameTests = map[Source]string{
	SourceNone:               "none",
	SourceDifficultyFile:     "difficulty-file",
	SourceGlobalFile:         "global-file",
	SourceDifficultyEmbedded: "difficulty-embedded",
	SourceGlobalEmbedded:     "global-embedded",
}

func TestSourceNames(t *testing.T) {
	for source, name := range sourceNameTests {
		if source.String() != name {
			t.Errorf("expected %v, got %v", name, source.String())
		}
		if ParseSource(name) != source {
			t.Errorf("expected %v to parse back", name)
		}
	}
	if Source(42).String() != "unknown" {
		t.Error("expected an unknown source name")
	}
}

func TestDifficultySet(t *testing.T) {
	set := NewDifficultySet(DefaultDifficulties...)
	for _, d := range []Difficulty{Easy, Normal, Hard, Expert, XD, RemiXD} {
		if !set.Contains(d) {
			t.Errorf("expected %v in the default set", d)
		}
	}
	if set.Contains(Legacy) || set.Contains("remixd") {
		t.Error("the set holds normalised names only")
	}
	if !set.Contains(ParseDifficulty(" remixd ")) {
		t.Error("expected ParseDifficulty to normalise")
	}
	if !NewDifficultySet("Challenge").Contains("CHALLENGE") {
		t.Error("expected configured names to be normalised")
	}
}
