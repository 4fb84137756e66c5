package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/streetgames/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Config   string           `short:"c" default:"streetgames.hcl" type:"path" help:"HCL config file (defaults apply when missing)"`
	Verbose  bool             `short:"v" help:"Verbose logging"`
	Simulate SimulateCmd      `cmd:"" help:"Auto-play rounds and report the house edge"`
	Limits   LimitsCmd        `cmd:"" help:"Show the bet limits a high-water mark unlocks"`
}

// Globals is what every command receives from the root flags
type Globals struct {
	Config *config.Config
	Logger *log.Logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("streetgames"),
		kong.Description("Rule engines for street gambling minigames"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&Globals{Config: cfg, Logger: newLogger(cfg.LogLevel, cli.Verbose)})
	ctx.FatalIfErrorf(err)
}

func newLogger(level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
