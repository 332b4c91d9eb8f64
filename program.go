package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.lost.host/meutraa/dyntrack/internal/audio"
	"git.lost.host/meutraa/dyntrack/internal/check"
	"git.lost.host/meutraa/dyntrack/internal/config"
	"git.lost.host/meutraa/dyntrack/internal/game"
	"git.lost.host/meutraa/dyntrack/internal/history"
	"git.lost.host/meutraa/dyntrack/internal/input"
	"git.lost.host/meutraa/dyntrack/internal/parser"
	"git.lost.host/meutraa/dyntrack/internal/render"
	"git.lost.host/meutraa/dyntrack/internal/resolver"
	"git.lost.host/meutraa/dyntrack/internal/srtb"
	"git.lost.host/meutraa/dyntrack/internal/worker"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

var (
	ErrUnsupportedDifficulty = errors.New("unsupported difficulty")
	ErrSpeedsFileExists      = errors.New("speeds file already exists")
)

type Program struct {
	Parser   parser.Parser
	Resolver *resolver.DefaultResolver
	Store    history.Store
	Renderer render.Renderer
	Chooser  input.Chooser
	Workers  int

	storeOpen bool
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	if nil == p.Parser {
		p.Parser = &parser.DefaultParser{}
	}
	if nil == p.Resolver {
		p.Resolver = resolver.New(p.Parser, config.ResolverConfig())
	}
	if nil == p.Renderer {
		p.Renderer = render.NewTerminal(os.Stdout)
	}
	if nil == p.Store {
		p.Store = &history.DefaultStore{Path: *config.Database}
	}
	if nil == p.Chooser {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			p.Chooser = &input.KeyboardChooser{Out: os.Stdout}
		} else {
			p.Chooser = input.NewLineChooser(os.Stdin, os.Stdout)
		}
	}
	if p.Workers < 1 {
		p.Workers = *config.Workers
	}
	return nil
}

func (p *Program) Deinit() {
	if p.storeOpen {
		p.Store.Deinit()
		p.storeOpen = false
	}
}

func (p *Program) openStore() error {
	if p.storeOpen {
		return nil
	}
	if err := p.Store.Init(); nil != err {
		return fmt.Errorf("unable to open history: %w", err)
	}
	p.storeOpen = true
	return nil
}

// track reads the chart bundle for its embedded metadata. An unreadable
// bundle leaves only the file tiers.
func (p *Program) track(chart string, d game.Difficulty) (resolver.Track, []byte) {
	track := resolver.Track{ChartPath: chart, Difficulty: d}
	data, err := os.ReadFile(chart)
	if nil != err {
		log.Warn().Err(err).Str("chart", chart).Msg("Unable to read chart bundle")
		return track, nil
	}
	bundle, err := srtb.Parse(data)
	if nil != err {
		log.Warn().Err(err).Str("chart", chart).Msg("Embedded triggers unavailable")
		return track, data
	}
	track.Metadata = bundle
	return track, data
}

// report shows a short notice for a broken speeds file and logs the details.
func (p *Program) report(err error) {
	var se *resolver.SourceError
	if !errors.As(err, &se) {
		log.Error().Err(err).Msg("Unable to resolve speed triggers")
		p.Renderer.Notice("Failed to resolve speed triggers, see the log")
		return
	}
	event := log.Error().Err(se.Err).Str("source", se.Source.String()).Str("file", se.Path)
	var pe *parser.Error
	if errors.As(se.Err, &pe) {
		event = event.Int("line", pe.Line)
	}
	event.Msg("Unable to load speed triggers")
	p.Renderer.Notice(fmt.Sprintf("Failed to load %v, no speed triggers applied", filepath.Base(se.Path)))
}

func (p *Program) Resolve(chart, difficulty string) (resolver.Result, error) {
	track, _ := p.track(chart, game.ParseDifficulty(difficulty))
	res, err := p.Resolver.Resolve(track)
	if nil != err {
		p.report(err)
		return res, err
	}
	log.Debug().Str("source", res.Source.String()).Str("path", res.Path).Int("triggers", len(res.Triggers)).Msg("Resolved")
	p.Renderer.Triggers(res)
	return res, nil
}

// Apply merges the resolved triggers into a fresh timeline. Resolution
// failures are reported and degrade to no triggers.
func (p *Program) Apply(chart, difficulty string, initialSpeed float64) (*game.Timeline, error) {
	d := game.ParseDifficulty(difficulty)
	track, data := p.track(chart, d)
	timeline := game.NewTimeline(initialSpeed)

	res, err := p.Resolver.Resolve(track)
	if nil != err {
		p.report(err)
		return timeline, nil
	}

	n, err := timeline.Apply(res.Triggers)
	if nil != err {
		return timeline, err
	}
	switch {
	case n == 0:
		p.Renderer.Fill("No speed triggers applied")
	case res.Source.IsFile():
		p.Renderer.Fill(fmt.Sprintf("Applied %d triggers from file %v", n, filepath.Base(res.Path)))
	default:
		p.Renderer.Fill(fmt.Sprintf("Applied %d triggers from embedded data", n))
	}
	log.Info().Str("source", res.Source.String()).Int("triggers", n).Int("turns", timeline.Turns).Msg("Applied")

	if nil != data && n > 0 {
		p.record(history.Record{
			Sum:        history.HashChart(data),
			Chart:      chart,
			Difficulty: d,
			Source:     res.Source,
			Path:       res.Path,
			Triggers:   n,
			AppliedAt:  time.Now(),
		})
	}
	return timeline, nil
}

func (p *Program) record(r history.Record) {
	if err := p.openStore(); nil != err {
		log.Warn().Err(err).Msg("History not recorded")
		return
	}
	if err := p.Store.Save(r); nil != err {
		log.Warn().Err(err).Msg("History not recorded")
	}
}

// editDifficulty accepts a supported difficulty or legacy for the global key.
func (p *Program) editDifficulty(difficulty string) (game.Difficulty, error) {
	d := game.ParseDifficulty(difficulty)
	if d == game.Legacy || p.Resolver.Config.Difficulties.Contains(d) {
		return d, nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnsupportedDifficulty, difficulty)
}

func (p *Program) Integrate(chart, speeds, difficulty string) error {
	d, err := p.editDifficulty(difficulty)
	if nil != err {
		return err
	}
	triggers, err := p.Parser.ParseFile(speeds)
	if nil != err {
		event := log.Error().Err(err).Str("file", speeds)
		var pe *parser.Error
		if errors.As(err, &pe) {
			event = event.Int("line", pe.Line)
		}
		event.Msg("Unable to parse speeds file")
		return fmt.Errorf("unable to parse %v: %w", filepath.Base(speeds), err)
	}

	bundle, err := srtb.Open(chart)
	if nil != err {
		return fmt.Errorf("unable to open chart: %w", err)
	}
	key := p.Resolver.Key(d)
	if err := bundle.SetTriggers(key, triggers); nil != err {
		return err
	}
	if err := bundle.Save(chart); nil != err {
		return fmt.Errorf("unable to save chart: %w", err)
	}
	p.Renderer.Fill(fmt.Sprintf("Integrated %d triggers into %v", len(triggers), key))
	return nil
}

// Extract writes the embedded triggers to output, or the chart's sibling
// speeds file when output is empty. It returns the file written.
func (p *Program) Extract(chart, difficulty, output string) (string, error) {
	d, err := p.editDifficulty(difficulty)
	if nil != err {
		return "", err
	}
	bundle, err := srtb.Open(chart)
	if nil != err {
		return "", fmt.Errorf("unable to open chart: %w", err)
	}
	key := p.Resolver.Key(d)
	data, err := bundle.Triggers(key)
	if nil != err {
		return "", fmt.Errorf("unable to extract %v: %w", key, err)
	}

	if output == "" {
		output = p.Resolver.SpeedsFile(chart, d)
		if _, err := os.Stat(output); nil == err {
			return "", fmt.Errorf("%w: %v, pass --output to replace it", ErrSpeedsFileExists, output)
		}
	} else if _, err := os.Stat(output); nil == err {
		log.Warn().Str("file", output).Msg("Overwriting speeds file")
	}

	comment := fmt.Sprintf("Extracted from %v (%v)", filepath.Base(chart), key)
	if err := saveSpeeds(output, data.Triggers, comment); nil != err {
		return "", err
	}
	p.Renderer.Fill(fmt.Sprintf("Extracted %d triggers to %v", len(data.Triggers), output))
	return output, nil
}

// saveSpeeds writes next to path and renames the result over it.
func saveSpeeds(path string, triggers []game.SpeedTrigger, comment string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if nil != err {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := parser.Write(tmp, triggers, comment); nil != err {
		tmp.Close()
		return fmt.Errorf("unable to write %v: %w", path, err)
	}
	if err := tmp.Close(); nil != err {
		return fmt.Errorf("unable to write %v: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

func (p *Program) Remove(chart, difficulty string) error {
	d, err := p.editDifficulty(difficulty)
	if nil != err {
		return err
	}
	bundle, err := srtb.Open(chart)
	if nil != err {
		return fmt.Errorf("unable to open chart: %w", err)
	}
	key := p.Resolver.Key(d)
	if err := bundle.DeleteValue(key); nil != err {
		return fmt.Errorf("unable to remove %v: %w", key, err)
	}
	if err := bundle.Save(chart); nil != err {
		return fmt.Errorf("unable to save chart: %w", err)
	}
	p.Renderer.Fill(fmt.Sprintf("Removed %v", key))
	return nil
}

func (p *Program) Check(chart, difficulty, song string) ([]check.Issue, error) {
	res, err := p.Resolve(chart, difficulty)
	if nil != err {
		return nil, err
	}

	if song == "" {
		song, err = audio.Find(chart)
		if nil != err {
			log.Debug().Err(err).Msg("Song length unknown")
		}
	}
	var length time.Duration
	if song != "" {
		length, err = audio.Length(song)
		if nil != err {
			log.Warn().Err(err).Str("file", song).Msg("Unable to read song length")
		}
	}

	issues := check.Triggers(res.Triggers, length)
	p.Renderer.Issues(issues)
	return issues, nil
}

type scanEntry struct {
	Difficulty game.Difficulty
	Result     resolver.Result
	Err        error
}

func (p *Program) Scan(ctx context.Context, directory string) error {
	charts := []string{}
	if err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".srtb") {
			charts = append(charts, path)
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk charts directory: %w", err)
	}
	log.Info().Int("charts", len(charts)).Int("workers", p.Workers).Msg("Scanning")

	difficulties := p.scanDifficulties()

	pool := worker.NewPool(p.Workers, func(ctx context.Context, chart string) ([]scanEntry, error) {
		track, _ := p.track(chart, "")
		entries := make([]scanEntry, 0, len(difficulties))
		for _, d := range difficulties {
			if err := ctx.Err(); nil != err {
				return entries, err
			}
			track.Difficulty = d
			res, err := p.Resolver.Resolve(track)
			entries = append(entries, scanEntry{Difficulty: d, Result: res, Err: err})
		}
		return entries, nil
	})

	failed := p.renderScan(directory, pool.Execute(ctx, charts))
	p.Renderer.Fill(fmt.Sprintf("%d charts, %d failed", len(charts), failed))
	return ctx.Err()
}

// renderScan prints one block per chart and returns how many tiers failed
// to load. A chart whose job was cancelled prints no partial rows.
func (p *Program) renderScan(directory string, outcomes []worker.Outcome[string, []scanEntry]) int {
	failed := 0
	for _, outcome := range outcomes {
		rel, err := filepath.Rel(directory, outcome.Input)
		if nil != err {
			rel = outcome.Input
		}
		if !outcome.Done {
			p.Renderer.Fill(fmt.Sprintf("%v  skipped", rel))
			continue
		}
		if nil != outcome.Err {
			log.Debug().Err(outcome.Err).Str("chart", rel).Msg("Scan interrupted")
			p.Renderer.Fill(fmt.Sprintf("%v  interrupted", rel))
			continue
		}
		p.Renderer.Fill(rel)
		for _, e := range outcome.Result {
			if nil != e.Err {
				failed++
				p.report(e.Err)
				continue
			}
			if e.Result.Source == game.SourceNone {
				continue
			}
			p.Renderer.Fill(fmt.Sprintf("  %-7v %-18v %4d", e.Difficulty, e.Result.Source, len(e.Result.Triggers)))
		}
	}
	return failed
}

// scanDifficulties lists the supported difficulties, the known ones in game
// order followed by any custom ones sorted by name.
func (p *Program) scanDifficulties() []game.Difficulty {
	known := game.NewDifficultySet(game.DefaultDifficulties...)
	difficulties := []game.Difficulty{}
	for _, d := range game.DefaultDifficulties {
		if p.Resolver.Config.Difficulties.Contains(d) {
			difficulties = append(difficulties, d)
		}
	}
	custom := []game.Difficulty{}
	for d := range p.Resolver.Config.Difficulties {
		if !known.Contains(d) {
			custom = append(custom, d)
		}
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i] < custom[j] })
	return append(difficulties, custom...)
}

func (p *Program) History(chart string) ([]history.Record, error) {
	data, err := os.ReadFile(chart)
	if nil != err {
		return nil, err
	}
	if err := p.openStore(); nil != err {
		return nil, err
	}
	records, err := p.Store.Load(history.HashChart(data))
	if nil != err {
		return nil, fmt.Errorf("unable to load history: %w", err)
	}
	if len(records) == 0 {
		p.Renderer.Fill("no history")
	}
	for _, r := range records {
		p.Renderer.Fill(fmt.Sprintf("%v  %-7v %-18v %4d  %v",
			r.AppliedAt.Format("2006-01-02 15:04:05"), r.Difficulty, r.Source, r.Triggers, r.Path))
	}
	return records, nil
}

var (
	menuModes        = []string{"Integrate speeds file", "Extract speeds file", "Remove embedded triggers", "Exit"}
	menuDifficulties = []string{"Easy", "Normal", "Hard", "Expert", "XD", "RemiXD", "All (legacy)"}
)

// Menu asks for an action and a difficulty, then runs the action.
func (p *Program) Menu(chart, speeds string) error {
	mode, err := p.Chooser.Choose("Select mode", menuModes)
	if errors.Is(err, input.ErrCancelled) {
		return nil
	} else if nil != err {
		return err
	}
	if mode == len(menuModes)-1 {
		return nil
	}

	idx, err := p.Chooser.Choose("Select difficulty", menuDifficulties)
	if errors.Is(err, input.ErrCancelled) {
		return nil
	} else if nil != err {
		return err
	}
	d := game.Legacy
	if idx < len(game.DefaultDifficulties) {
		d = game.DefaultDifficulties[idx]
	}

	switch mode {
	case 0:
		if speeds == "" {
			speeds = p.Resolver.SpeedsFile(chart, d)
		}
		return p.Integrate(chart, speeds, string(d))
	case 1:
		_, err := p.Extract(chart, string(d), "")
		return err
	default:
		return p.Remove(chart, string(d))
	}
}
