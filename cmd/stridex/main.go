package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/stridex/stridex/internal/cli"
	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`
	Storage string `help:"Storage backend (memory or sqlite). Overrides the config file."`
	Seed    int64  `help:"Seed for the history generator and coach. Negative is unseeded." default:"-1"`

	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve  cli.ServeCmd  `cmd:"" help:"Serve the JSON API."`
	Report cli.ReportCmd `cmd:"" help:"Create a demo account and print its report."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified habit tracking dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.ApplyEnv()
	if CLI.Storage != "" {
		cfg.Storage.Backend = CLI.Storage
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:      cfg.Log.Debug,
		Dir:        config.ExpandHome(cfg.Log.Dir),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		JSON:       cfg.Log.JSON,
	}); err != nil {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(context.Background(), cfg, CLI.Seed)
	if err != nil {
		errors.Fatal(err)
	}
	defer appCtx.Close()

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Close()
		errors.Fatal(err)
	}
}
