package render

import (
	"git.lost.host/meutraa/dyntrack/internal/check"
	"git.lost.host/meutraa/dyntrack/internal/resolver"
)

type Renderer interface {
	Fill(message string)
	Triggers(res resolver.Result)
	Issues(issues []check.Issue)
	// Notice is the short user facing message, details go to the log
	Notice(message string)
	Flush() error
}
