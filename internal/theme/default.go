package theme

import (
	"fmt"
	"strconv"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme colours output with 24 bit ANSI escapes, Plain disables them.
type DefaultTheme struct {
	Plain bool
}

func (t *DefaultTheme) paint(c Color, s string) string {
	if t.Plain {
		return s
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderSpeed(multiplier float64) string {
	return t.paint(SpeedColor(multiplier), "x"+strconv.FormatFloat(multiplier, 'f', -1, 64))
}

func (t *DefaultTheme) RenderSource(source game.Source) string {
	col, ok := sourceColors[source]
	if !ok {
		col = sourceColors[game.SourceNone]
	}
	return t.paint(col, source.String())
}

func (t *DefaultTheme) RenderWarning(message string) string {
	return t.paint(Color{236, 195, 0}, message)
}

func (t *DefaultTheme) RenderError(message string) string {
	return t.paint(Color{236, 30, 0}, message)
}

var sourceColors = map[game.Source]Color{
	game.SourceNone:               {106, 106, 106}, // grey
	game.SourceDifficultyFile:     {0, 236, 128},   // green
	game.SourceGlobalFile:         {173, 236, 236}, // light blue
	game.SourceDifficultyEmbedded: {106, 0, 236},   // purple
	game.SourceGlobalEmbedded:     {236, 0, 106},   // pink
}

func SpeedColor(multiplier float64) Color {
	switch {
	case multiplier <= 0:
		return Color{106, 106, 106} // stopped or reversed grey
	case multiplier < 1:
		return Color{0, 118, 236} // slower blue
	case multiplier == 1:
		return Color{255, 255, 255}
	case multiplier < 1.5:
		return Color{236, 195, 0} // yellow
	case multiplier <= 2:
		return Color{236, 128, 0} // orange
	}
	return Color{236, 30, 0} // red
}
