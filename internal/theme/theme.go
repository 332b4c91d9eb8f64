package theme

import "git.lost.host/meutraa/dyntrack/internal/game"

type Theme interface {
	RenderSpeed(multiplier float64) string
	RenderSource(source game.Source) string
	RenderWarning(message string) string
	RenderError(message string) string
}
