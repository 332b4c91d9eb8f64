package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

const (
	keywordRepeat    = "repeat"
	keywordEndRepeat = "endrepeat"
	commentPrefix    = "#"

	// MaxRepeatCount bounds a single repeat block
	MaxRepeatCount = 10000
	// MaxTriggers bounds the expanded output of one file
	MaxTriggers = 100000
)

type DefaultParser struct{}

// repeatBlock is the single active repeat context, nesting is not allowed
type repeatBlock struct {
	count     int
	interval  float64
	iteration int // 0 for the first pass over the body
	start     int // Index of the first body line
	line      int // Index of the repeat directive itself
}

func (b *repeatBlock) offset() float64 {
	return b.interval * float64(b.iteration)
}

func (p *DefaultParser) ParseFile(file string) ([]game.SpeedTrigger, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	return p.ParseReader(f)
}

func (p *DefaultParser) ParseReader(r io.Reader) ([]game.SpeedTrigger, error) {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); nil != err {
		return nil, fmt.Errorf("unable to read speeds: %w", err)
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], "\uFEFF")
	}
	return p.Parse(lines)
}

func (p *DefaultParser) Parse(lines []string) ([]game.SpeedTrigger, error) {
	triggers := []game.SpeedTrigger{}
	var block *repeatBlock

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		fields := strings.Fields(line)

		switch {
		case strings.EqualFold(fields[0], keywordRepeat):
			if nil != block {
				return nil, newError(ErrNestedRepeat, i, "")
			}
			b, err := parseRepeat(fields, i)
			if nil != err {
				return nil, err
			}
			block = b
		case strings.EqualFold(fields[0], keywordEndRepeat):
			if nil == block {
				return nil, newError(ErrUnmatchedEndRepeat, i, "")
			}
			block.iteration++
			if block.iteration < block.count {
				// The loop increment lands the cursor on the first body line
				i = block.start - 1
				continue
			}
			block = nil
		default:
			if len(fields) < 2 {
				continue
			}
			trigger, err := parseTrigger(fields, i)
			if nil != err {
				return nil, err
			}
			if nil != block {
				trigger.Time += block.offset()
			}
			if len(triggers) >= MaxTriggers {
				return nil, newError(ErrTooManyTriggers, i, "")
			}
			triggers = append(triggers, trigger)
		}
	}

	if nil != block {
		return nil, newError(ErrUnterminatedRepeat, block.line, "")
	}
	return triggers, nil
}

// repeat <count> <ignored> <interval>
func parseRepeat(fields []string, index int) (*repeatBlock, error) {
	if len(fields) < 4 {
		return nil, newError(ErrMalformedRepeat, index, "")
	}
	count, err := strconv.Atoi(fields[1])
	if nil != err || count < 1 || count > MaxRepeatCount {
		return nil, newError(ErrMalformedRepeat, index, fields[1])
	}
	interval, ok := parseNumber(fields[3])
	if !ok {
		return nil, newError(ErrMalformedRepeat, index, fields[3])
	}
	return &repeatBlock{
		count:    count,
		interval: interval,
		start:    index + 1,
		line:     index,
	}, nil
}

// <time> <speedMultiplier> [interpolate]
func parseTrigger(fields []string, index int) (game.SpeedTrigger, error) {
	var trigger game.SpeedTrigger
	time, ok := parseNumber(fields[0])
	if !ok {
		return trigger, newError(ErrInvalidTime, index, fields[0])
	}
	speed, ok := parseNumber(fields[1])
	if !ok {
		return trigger, newError(ErrInvalidSpeedMultiplier, index, fields[1])
	}
	trigger.Time = time
	trigger.SpeedMultiplier = speed

	// An unrecognised third token is ignored, not an error
	if len(fields) >= 3 {
		if interpolate, ok := parseBool(fields[2]); ok {
			trigger.InterpolateToNextTrigger = interpolate
		}
	}
	return trigger, nil
}

// parseNumber only accepts plain decimal notation with '.' as the separator,
// whatever the locale. Hex, NaN and infinities are rejected.
func parseNumber(token string) (float64, bool) {
	for _, c := range token {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(token, 64)
	if nil != err || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseBool(token string) (bool, bool) {
	switch {
	case strings.EqualFold(token, "true"):
		return true, true
	case strings.EqualFold(token, "false"):
		return false, true
	}
	return false, false
}
