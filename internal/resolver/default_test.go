package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/dyntrack/internal/game"
	"git.lost.host/meutraa/dyntrack/internal/parser"
)

// mapMetadata is an in-memory chart bundle
type mapMetadata map[string]string

func (m mapMetadata) HasValue(key string) bool {
	_, ok := m[key]
	return ok
}

func (m mapMetadata) Value(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.New("no such key")
	}
	return v, nil
}

func newResolver() *DefaultResolver {
	return New(&parser.DefaultParser{}, DefaultConfig())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); nil != err {
		t.Fatal(err)
	}
}

func chartIn(t *testing.T) (string, string) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "song.srtb")
	writeFile(t, chart, "{}")
	return dir, chart
}

func TestDifficultyFileWins(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song_HARD.speeds"), "0 2\n")
	writeFile(t, filepath.Join(dir, "song.speeds"), "0 3\n1 4\n")
	md := mapMetadata{
		"SpeedHelper_SpeedTriggers_HARD": `{"Triggers":[{"Time":0,"SpeedMultiplier":5}]}`,
	}

	res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: game.Hard, Metadata: md})
	if nil != err {
		t.Fatal(err)
	}
	if res.Source != game.SourceDifficultyFile {
		t.Errorf("expected %v, got %v", game.SourceDifficultyFile, res.Source)
	}
	if res.Path != filepath.Join(dir, "song_HARD.speeds") {
		t.Errorf("unexpected path %v", res.Path)
	}
	if len(res.Triggers) != 1 || res.Triggers[0].SpeedMultiplier != 2 {
		t.Errorf("expected only the difficulty file's trigger, got %v", res.Triggers)
	}
}

func TestGlobalFile(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song_EASY.speeds"), "0 2\n")
	writeFile(t, filepath.Join(dir, "song.speeds"), "0 3\n1 4 true\n")

	res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: game.Expert})
	if nil != err {
		t.Fatal(err)
	}
	if res.Source != game.SourceGlobalFile || len(res.Triggers) != 2 {
		t.Errorf("expected 2 triggers from the global file, got %v %v", res.Source, res.Triggers)
	}
}

func TestEmptyFileStillWins(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song.speeds"), "# nothing yet\n")
	md := mapMetadata{"SpeedHelper_SpeedTriggers": `{"Triggers":[{"Time":1,"SpeedMultiplier":2}]}`}

	res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: game.Normal, Metadata: md})
	if nil != err {
		t.Fatal(err)
	}
	if res.Source != game.SourceGlobalFile || len(res.Triggers) != 0 {
		t.Errorf("expected an empty global file result, got %v %v", res.Source, res.Triggers)
	}
}

func TestParseFailureDoesNotFallBack(t *testing.T) {
	dir, chart := chartIn(t)
	path := filepath.Join(dir, "song_XD.speeds")
	writeFile(t, path, "0 1\nabc 2.0\n")
	writeFile(t, filepath.Join(dir, "song.speeds"), "0 3\n")

	res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: game.XD})
	if nil == err {
		t.Fatalf("expected an error, got %v", res)
	}
	var serr *SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SourceError, got %T", err)
	}
	if serr.Path != path || serr.Source != game.SourceDifficultyFile {
		t.Errorf("unexpected source error %v", serr)
	}
	if !errors.Is(err, parser.ErrInvalidTime) {
		t.Errorf("expected the parser error to be wrapped, got %v", err)
	}
	var perr *parser.Error
	if !errors.As(err, &perr) || perr.Line != 2 {
		t.Errorf("expected line 2, got %v", err)
	}
	if res.Source != game.SourceNone || len(res.Triggers) != 0 {
		t.Errorf("expected no triggers, got %v", res)
	}
}

func TestEmbedded(t *testing.T) {
	_, chart := chartIn(t)
	global := `{"Triggers":[{"Time":0,"SpeedMultiplier":1.5,"InterpolateToNextTrigger":true},{"Time":8,"SpeedMultiplier":1}]}`

	tests := map[string]struct {
		Metadata mapMetadata
		Source   game.Source
		Count    int
	}{
		"global only": {
			mapMetadata{"SpeedHelper_SpeedTriggers": global},
			game.SourceGlobalEmbedded, 2,
		},
		"difficulty wins": {
			mapMetadata{
				"SpeedHelper_SpeedTriggers_REMIXD": `{"Triggers":[{"Time":3,"SpeedMultiplier":2}]}`,
				"SpeedHelper_SpeedTriggers":        global,
			},
			game.SourceDifficultyEmbedded, 1,
		},
		"corrupt difficulty falls through": {
			mapMetadata{
				"SpeedHelper_SpeedTriggers_REMIXD": `{"Triggers":[{"Time":`,
				"SpeedHelper_SpeedTriggers":        global,
			},
			game.SourceGlobalEmbedded, 2,
		},
		"null difficulty falls through": {
			mapMetadata{
				"SpeedHelper_SpeedTriggers_REMIXD": `null`,
				"SpeedHelper_SpeedTriggers":        global,
			},
			game.SourceGlobalEmbedded, 2,
		},
		"camel case fields": {
			mapMetadata{"SpeedHelper_SpeedTriggers": `{"triggers":[{"time":1,"speedMultiplier":2,"interpolateToNextTrigger":true}]}`},
			game.SourceGlobalEmbedded, 1,
		},
		"empty list is available": {
			mapMetadata{
				"SpeedHelper_SpeedTriggers_REMIXD": `{"Triggers":[]}`,
				"SpeedHelper_SpeedTriggers":        global,
			},
			game.SourceDifficultyEmbedded, 0,
		},
		"other difficulty ignored": {
			mapMetadata{"SpeedHelper_SpeedTriggers_EASY": global},
			game.SourceNone, 0,
		},
		"everything corrupt": {
			mapMetadata{"SpeedHelper_SpeedTriggers": `[1,2]`},
			game.SourceNone, 0,
		},
	}

	r := newResolver()
	for name, test := range tests {
		res, err := r.Resolve(Track{ChartPath: chart, Difficulty: game.RemiXD, Metadata: test.Metadata})
		if nil != err {
			t.Errorf("%v: unexpected error %v", name, err)
			continue
		}
		if res.Source != test.Source || len(res.Triggers) != test.Count {
			t.Errorf("%v: expected %v with %d triggers, got %v with %v", name, test.Source, test.Count, res.Source, res.Triggers)
		}
	}
}

func TestEmbeddedValues(t *testing.T) {
	md := mapMetadata{"SpeedHelper_SpeedTriggers": `{"Triggers":[{"Time":0.5,"SpeedMultiplier":1.25,"InterpolateToNextTrigger":true}]}`}
	res, err := newResolver().Resolve(Track{Difficulty: game.Easy, Metadata: md})
	if nil != err {
		t.Fatal(err)
	}
	expected := game.SpeedTrigger{Time: 0.5, SpeedMultiplier: 1.25, InterpolateToNextTrigger: true}
	if len(res.Triggers) != 1 || res.Triggers[0] != expected {
		t.Errorf("expected %v, got %v", expected, res.Triggers)
	}
	if res.Path != "SpeedHelper_SpeedTriggers" {
		t.Errorf("unexpected key %v", res.Path)
	}
}

func TestNothingFound(t *testing.T) {
	_, chart := chartIn(t)
	for _, track := range []Track{
		{ChartPath: chart, Difficulty: game.Hard},
		{ChartPath: chart, Difficulty: game.Hard, Metadata: mapMetadata{}},
		{Difficulty: game.Hard},
	} {
		res, err := newResolver().Resolve(track)
		if nil != err {
			t.Errorf("unexpected error %v", err)
		}
		if res.Source != game.SourceNone || nil == res.Triggers || len(res.Triggers) != 0 {
			t.Errorf("expected an empty none result, got %v", res)
		}
	}
}

func TestUnsupportedDifficulty(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song.speeds"), "0 3\n")

	for _, d := range []game.Difficulty{"IMPOSSIBLE", "", game.Legacy} {
		res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: d})
		if nil != err || res.Source != game.SourceNone {
			t.Errorf("%q: expected none, got %v %v", d, res.Source, err)
		}
	}

	// Lower case names are normalised before the lookup
	res, err := newResolver().Resolve(Track{ChartPath: chart, Difficulty: "hard"})
	if nil != err || res.Source != game.SourceGlobalFile {
		t.Errorf("expected the global file, got %v %v", res.Source, err)
	}
}

func TestConfigurableDifficulties(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song_IMPOSSIBLE.speeds"), "0 3\n")

	cfg := DefaultConfig()
	cfg.Difficulties = game.NewDifficultySet("impossible")
	res, err := New(&parser.DefaultParser{}, cfg).Resolve(Track{ChartPath: chart, Difficulty: "IMPOSSIBLE"})
	if nil != err || res.Source != game.SourceDifficultyFile {
		t.Errorf("expected the difficulty file, got %v %v", res.Source, err)
	}

	res, err = New(&parser.DefaultParser{}, cfg).Resolve(Track{ChartPath: chart, Difficulty: game.Hard})
	if nil != err || res.Source != game.SourceNone {
		t.Errorf("expected none for a difficulty outside the set, got %v %v", res.Source, err)
	}
}

func TestDisabled(t *testing.T) {
	dir, chart := chartIn(t)
	writeFile(t, filepath.Join(dir, "song.speeds"), "abc 1\n")

	cfg := DefaultConfig()
	cfg.Enabled = false
	res, err := New(&parser.DefaultParser{}, cfg).Resolve(Track{ChartPath: chart, Difficulty: game.Hard})
	if nil != err || res.Source != game.SourceNone {
		t.Errorf("expected a disabled resolver to find nothing, got %v %v", res.Source, err)
	}
}

func TestNames(t *testing.T) {
	r := newResolver()
	chart := filepath.Join("charts", "My Song.v2.srtb")
	if p := r.SpeedsFile(chart, game.Expert); p != filepath.Join("charts", "My Song.v2_EXPERT.speeds") {
		t.Errorf("unexpected difficulty file %v", p)
	}
	if p := r.SpeedsFile(chart, game.Legacy); p != filepath.Join("charts", "My Song.v2.speeds") {
		t.Errorf("unexpected global file %v", p)
	}
	if k := r.Key(game.XD); k != "SpeedHelper_SpeedTriggers_XD" {
		t.Errorf("unexpected key %v", k)
	}
	if k := r.Key(""); k != "SpeedHelper_SpeedTriggers" {
		t.Errorf("unexpected key %v", k)
	}
}
