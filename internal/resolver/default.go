package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/dyntrack/internal/game"
	"git.lost.host/meutraa/dyntrack/internal/parser"
	"github.com/rs/zerolog/log"
)

type DefaultResolver struct {
	Parser parser.Parser
	Config Config
}

func New(p parser.Parser, cfg Config) *DefaultResolver {
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if nil == cfg.Difficulties {
		cfg.Difficulties = game.NewDifficultySet(game.DefaultDifficulties...)
	}
	return &DefaultResolver{Parser: p, Config: cfg}
}

type tier struct {
	source game.Source
	path   string
}

// SpeedsFile returns the sibling speeds file for a chart. The global file
// is returned for game.Legacy or an empty difficulty.
func (r *DefaultResolver) SpeedsFile(chartPath string, d game.Difficulty) string {
	dir := filepath.Dir(chartPath)
	name := strings.TrimSuffix(filepath.Base(chartPath), filepath.Ext(chartPath))
	if d == "" || d == game.Legacy {
		return filepath.Join(dir, name+r.Config.Extension)
	}
	return filepath.Join(dir, name+"_"+string(d)+r.Config.Extension)
}

// Key returns the embedded metadata key, following the same rule as SpeedsFile.
func (r *DefaultResolver) Key(d game.Difficulty) string {
	if d == "" || d == game.Legacy {
		return r.Config.KeyPrefix
	}
	return r.Config.KeyPrefix + "_" + string(d)
}

func (r *DefaultResolver) Resolve(track Track) (Result, error) {
	none := Result{Source: game.SourceNone, Triggers: []game.SpeedTrigger{}}
	if !r.Config.Enabled {
		return none, nil
	}

	difficulty := game.ParseDifficulty(string(track.Difficulty))
	if !r.Config.Difficulties.Contains(difficulty) {
		log.Debug().Str("difficulty", string(difficulty)).Msg("Unsupported difficulty, skipping")
		return none, nil
	}

	for _, t := range r.fileTiers(track.ChartPath, difficulty) {
		if !fileExists(t.path) {
			continue
		}
		triggers, err := r.Parser.ParseFile(t.path)
		if nil != err {
			return none, &SourceError{Source: t.source, Path: t.path, Err: err}
		}
		return Result{Source: t.source, Path: t.path, Triggers: triggers}, nil
	}

	if nil == track.Metadata {
		return none, nil
	}
	embedded := []tier{
		{source: game.SourceDifficultyEmbedded, path: r.Key(difficulty)},
		{source: game.SourceGlobalEmbedded, path: r.Key(game.Legacy)},
	}
	for _, t := range embedded {
		data, ok := readEmbedded(track.Metadata, t.path)
		if !ok {
			continue
		}
		return Result{Source: t.source, Path: t.path, Triggers: data.Triggers}, nil
	}

	return none, nil
}

func (r *DefaultResolver) fileTiers(chartPath string, d game.Difficulty) []tier {
	if chartPath == "" {
		return nil
	}
	return []tier{
		{source: game.SourceDifficultyFile, path: r.SpeedsFile(chartPath, d)},
		{source: game.SourceGlobalFile, path: r.SpeedsFile(chartPath, game.Legacy)},
	}
}

// readEmbedded treats every failure as the tier being unavailable
func readEmbedded(md Metadata, key string) (*game.TriggerData, bool) {
	if !md.HasValue(key) {
		return nil, false
	}
	value, err := md.Value(key)
	if nil != err {
		log.Debug().Err(err).Str("key", key).Msg("Unable to read embedded triggers")
		return nil, false
	}
	var data game.TriggerData
	if err := json.Unmarshal([]byte(value), &data); nil != err {
		log.Debug().Err(err).Str("key", key).Msg("Embedded triggers are corrupt")
		return nil, false
	}
	if nil == data.Triggers {
		return nil, false
	}
	return &data, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return nil == err && !info.IsDir()
}
