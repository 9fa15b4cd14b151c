package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/shoplist/internal/cli"
	"github.com/Makepad-fr/shoplist/internal/config"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to config file (default $SHOPLIST_CONFIG or ~/.config/shoplist/config.yaml)")
	theme := flag.String("theme", "", "color theme: classic, neon or mono (overrides config)")
	groupPending := flag.Bool("group", false, "group output by to-buy/bought")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(config.Resolve(*configPath))
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	ui.SetTheme(cfg.UI.Theme)
	if *noColor {
		ui.SetColorForcing(false, true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, args, cli.Options{
		Group:  *groupPending,
		Config: cfg,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
