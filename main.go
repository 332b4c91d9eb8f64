package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/dyntrack/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(); nil != err {
		log.Fatal().Err(err).Msg("dyntrack failed")
	}
}

func setupContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func run() error {
	command, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	p := &Program{}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()
	defer func() {
		if err := p.Renderer.Flush(); nil != err {
			log.Warn().Err(err).Msg("Unable to write output")
		}
	}()

	switch command {
	case config.Resolve.FullCommand():
		_, err = p.Resolve(*config.ResolveChart, *config.ResolveDifficulty)
	case config.Apply.FullCommand():
		_, err = p.Apply(*config.ApplyChart, *config.ApplyDifficulty, *config.ApplyInitialSpeed)
	case config.Integrate.FullCommand():
		err = p.Integrate(*config.IntegrateChart, *config.IntegrateSpeeds, *config.IntegrateDifficulty)
	case config.Extract.FullCommand():
		_, err = p.Extract(*config.ExtractChart, *config.ExtractDifficulty, *config.ExtractOutput)
	case config.Remove.FullCommand():
		err = p.Remove(*config.RemoveChart, *config.RemoveDifficulty)
	case config.Check.FullCommand():
		_, err = p.Check(*config.CheckChart, *config.CheckDifficulty, *config.CheckAudio)
	case config.Scan.FullCommand():
		ctx, cancel := setupContext()
		defer cancel()
		err = p.Scan(ctx, *config.ScanDirectory)
	case config.History.FullCommand():
		_, err = p.History(*config.HistoryChart)
	case config.Menu.FullCommand():
		// Flush so the prompts follow anything already rendered
		p.Renderer.Flush()
		err = p.Menu(*config.MenuChart, *config.MenuSpeeds)
	default:
		err = fmt.Errorf("unknown command %v", command)
	}
	return err
}
