package config

import (
	"strings"

	"git.lost.host/meutraa/dyntrack/internal/game"
	"git.lost.host/meutraa/dyntrack/internal/resolver"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvFile is loaded before flags are parsed, flags win over it
var EnvFile = ".env"

var (
	App = kingpin.New("dyntrack", "Dynamic track speed triggers for custom charts")

	Enabled      = App.Flag("enabled", "Apply speed triggers at all").Default("true").Envar("DYNTRACK_ENABLED").Bool()
	Difficulties = App.Flag("difficulties", "Comma separated supported difficulties").Default("EASY,NORMAL,HARD,EXPERT,XD,REMIXD").Envar("DYNTRACK_DIFFICULTIES").String()
	Extension    = App.Flag("extension", "Speeds file extension").Default(resolver.DefaultExtension).Envar("DYNTRACK_EXTENSION").String()
	KeyPrefix    = App.Flag("key-prefix", "Embedded metadata key prefix").Default(resolver.DefaultKeyPrefix).Envar("DYNTRACK_KEY_PREFIX").String()
	Database     = App.Flag("db", "History database").Default("./dyntrack.db").Envar("DYNTRACK_DB").String()
	Workers      = App.Flag("workers", "Charts resolved in parallel by scan").Default("4").Short('w').Envar("DYNTRACK_WORKERS").Int()
	LogLevel     = App.Flag("log-level", "Log level").Default("info").Envar("DYNTRACK_LOG_LEVEL").Enum("trace", "debug", "info", "warn", "error")

	Resolve           = App.Command("resolve", "Show the triggers a chart resolves to")
	ResolveChart      = chartArg(Resolve)
	ResolveDifficulty = difficultyFlag(Resolve)

	Apply             = App.Command("apply", "Apply triggers to a fresh track timeline and record it")
	ApplyChart        = chartArg(Apply)
	ApplyDifficulty   = difficultyFlag(Apply)
	ApplyInitialSpeed = Apply.Flag("initial-speed", "Track speed before any trigger").Default("1.0").Short('s').Float64()

	Integrate           = App.Command("integrate", "Embed a speeds file into a chart bundle")
	IntegrateChart      = chartArg(Integrate)
	IntegrateSpeeds     = Integrate.Arg("speeds", "Speeds file").Required().ExistingFile()
	IntegrateDifficulty = difficultyFlag(Integrate)

	Extract           = App.Command("extract", "Write embedded triggers out as a speeds file")
	ExtractChart      = chartArg(Extract)
	ExtractDifficulty = difficultyFlag(Extract)
	ExtractOutput     = Extract.Flag("output", "Speeds file to write, defaults to the chart's sibling").Short('o').String()

	Remove           = App.Command("remove", "Remove embedded triggers from a chart bundle")
	RemoveChart      = chartArg(Remove)
	RemoveDifficulty = difficultyFlag(Remove)

	Check           = App.Command("check", "Resolve and lint the triggers of a chart")
	CheckChart      = chartArg(Check)
	CheckDifficulty = difficultyFlag(Check)
	CheckAudio      = Check.Flag("audio", "Song file, found next to the chart when omitted").Short('a').String()

	Scan          = App.Command("scan", "Resolve every chart below a directory")
	ScanDirectory = Scan.Arg("directory", "Custom charts directory").Required().ExistingDir()

	History      = App.Command("history", "List previous applications for a chart")
	HistoryChart = chartArg(History)

	Menu       = App.Command("menu", "Choose an action and difficulty interactively")
	MenuChart  = chartArg(Menu)
	MenuSpeeds = Menu.Arg("speeds", "Speeds file for integrate").ExistingFile()
)

func chartArg(cmd *kingpin.CmdClause) *string {
	return cmd.Arg("chart", "Chart bundle (.srtb)").Required().ExistingFile()
}

func difficultyFlag(cmd *kingpin.CmdClause) *string {
	return cmd.Flag("difficulty", "Difficulty, or legacy for the global tier when editing").Short('d').Required().String()
}

// Parse loads the env file, parses args and applies the log level. It
// returns the selected command.
func Parse(args []string) (string, error) {
	if err := godotenv.Load(EnvFile); nil != err {
		log.Debug().Str("file", EnvFile).Msg("No env file found, using environment variables")
	}

	command, err := App.Parse(args)
	if nil != err {
		return "", err
	}

	level, err := zerolog.ParseLevel(*LogLevel)
	if nil != err {
		return "", err
	}
	zerolog.SetGlobalLevel(level)
	return command, nil
}

func DifficultyList() []game.Difficulty {
	list := []game.Difficulty{}
	for _, name := range strings.Split(*Difficulties, ",") {
		if d := game.ParseDifficulty(name); d != "" {
			list = append(list, d)
		}
	}
	return list
}

func ResolverConfig() resolver.Config {
	return resolver.Config{
		Enabled:      *Enabled,
		Difficulties: game.NewDifficultySet(DifficultyList()...),
		Extension:    *Extension,
		KeyPrefix:    *KeyPrefix,
	}
}
