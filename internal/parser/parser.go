package parser

import (
	"io"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

type Parser interface {
	// Parse converts the lines of a speeds file into triggers, in file order
	// with repeat blocks expanded.
	Parse(lines []string) ([]game.SpeedTrigger, error)
	ParseReader(r io.Reader) ([]game.SpeedTrigger, error)
	ParseFile(file string) ([]game.SpeedTrigger, error)
}
