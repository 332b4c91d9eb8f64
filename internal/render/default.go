package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.lost.host/meutraa/dyntrack/internal/check"
	"git.lost.host/meutraa/dyntrack/internal/resolver"
	"git.lost.host/meutraa/dyntrack/internal/theme"
	"golang.org/x/term"
)

const defaultWidth = 80

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme
	Width int

	buffer strings.Builder
}

// NewTerminal renders to f, with colour only when f is a terminal.
func NewTerminal(f *os.File) *DefaultRenderer {
	fd := int(f.Fd())
	tty := term.IsTerminal(fd)
	width := defaultWidth
	if tty {
		if w, _, err := term.GetSize(fd); nil == err && w > 0 {
			width = w
		}
	}
	return &DefaultRenderer{
		Out:   f,
		Theme: &theme.DefaultTheme{Plain: !tty},
		Width: width,
	}
}

func (r *DefaultRenderer) Fill(message string) {
	r.buffer.WriteString(message)
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) Triggers(res resolver.Result) {
	r.Fill(fmt.Sprintf("source  %v  %v", r.Theme.RenderSource(res.Source), r.shorten(res.Path, 30)))
	if len(res.Triggers) == 0 {
		r.Fill("no triggers")
		return
	}
	r.Fill("   #        time  ease   speed")
	for i, t := range res.Triggers {
		ease := ""
		if t.InterpolateToNextTrigger {
			ease = "~"
		}
		r.Fill(fmt.Sprintf("%4d  %10.3f  %-5v  %v", i, t.Time, ease, r.Theme.RenderSpeed(t.SpeedMultiplier)))
	}
	r.Fill(fmt.Sprintf("%d triggers", len(res.Triggers)))
}

func (r *DefaultRenderer) Issues(issues []check.Issue) {
	if len(issues) == 0 {
		r.Fill("no issues")
		return
	}
	for _, issue := range issues {
		r.Fill(r.Theme.RenderWarning(issue.String()))
	}
}

func (r *DefaultRenderer) Notice(message string) {
	r.Fill(r.Theme.RenderError(message))
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}

// shorten keeps the tail of long paths so the file name stays visible
func (r *DefaultRenderer) shorten(s string, reserved int) string {
	max := r.Width - reserved
	if max < 16 || len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
