package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio format")

var Extensions = map[string]bool{
	".ogg": true,
	".mp3": true,
	".wav": true,
}

// Find looks for the song that belongs to a chart. A file sharing the
// chart's base name wins, then any audio file in the directory in name order.
func Find(chartPath string) (string, error) {
	dir := filepath.Dir(chartPath)
	name := strings.TrimSuffix(filepath.Base(chartPath), filepath.Ext(chartPath))

	entries, err := os.ReadDir(dir)
	if nil != err {
		return "", fmt.Errorf("unable to read song directory: %w", err)
	}

	candidates := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !Extensions[ext] {
			continue
		}
		if strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())) == name {
			return filepath.Join(dir, e.Name()), nil
		}
		candidates = append(candidates, e.Name())
	}
	if len(candidates) == 0 {
		return "", errors.New("unable to find .ogg/.mp3/.wav file next to the chart")
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}

// Length decodes the header of a song and returns how long it plays.
func Length(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if nil != err {
		return 0, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return 0, ErrUnsupported
	}
	if nil != err {
		f.Close()
		return 0, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}
