package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"git.lost.host/meutraa/dyntrack/internal/game"
)

// Format writes a trigger as a speeds line. Floats use the shortest
// representation that parses back to the same value.
func Format(t game.SpeedTrigger) string {
	return strconv.FormatFloat(t.Time, 'g', -1, 64) + " " +
		strconv.FormatFloat(t.SpeedMultiplier, 'g', -1, 64) + " " +
		strconv.FormatBool(t.InterpolateToNextTrigger)
}

func Encode(triggers []game.SpeedTrigger) []string {
	lines := make([]string, len(triggers))
	for i, t := range triggers {
		lines[i] = Format(t)
	}
	return lines
}

// Write encodes triggers to w, preceded by comment lines if comment is set.
func Write(w io.Writer, triggers []game.SpeedTrigger, comment string) error {
	bw := bufio.NewWriter(w)
	if comment != "" {
		for _, line := range strings.Split(comment, "\n") {
			bw.WriteString(commentPrefix + " " + line + "\n")
		}
	}
	for _, line := range Encode(triggers) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
