package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Adda-Baaj/simple-uber/internal/app"
	"github.com/Adda-Baaj/simple-uber/internal/config"
	"github.com/Adda-Baaj/simple-uber/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ridectl", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, app.QueryUsage) }
	output := fs.String("output", app.OutputJSON, "output format: json or yaml")
	sandbox := fs.Bool("sandbox", false, "use the sandbox API endpoint")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return app.ExitOK
		}
		return app.ExitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return app.ExitFailure
	}
	if *sandbox {
		cfg.APIEnvironment = config.EnvironmentSandbox
	}
	if err := cfg.RequireToken(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return app.ExitFailure
	}

	log, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return app.ExitFailure
	}
	defer logger.Close()

	cmd, err := app.NewQueryCommand(app.NewAPIClient(cfg, log), os.Stdout, *output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return app.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx, fs.Args()); err != nil {
		app.DescribeError(os.Stderr, err)
		if errors.Is(err, app.ErrUsage) {
			fmt.Fprint(os.Stderr, "\n"+app.QueryUsage)
		}
		return app.ExitCode(err)
	}
	return app.ExitOK
}
