package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/rssfeeder/pkg/config"
	"github.com/umputun/rssfeeder/pkg/feed"
	"github.com/umputun/rssfeeder/pkg/repository"
	"github.com/umputun/rssfeeder/pkg/service"
	"github.com/umputun/rssfeeder/pkg/taskqueue"
	"github.com/umputun/rssfeeder/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DSN    string `long:"dsn" env:"DSN" description:"database connection string, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	lgr.Printf("[INFO] starting rssfeeder version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run starts the http server and the feed update engine, blocks until ctx is canceled or one of them fails
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	engine := service.NewEngine(repos, engineParams(cfg))
	srv := server.New(cfg, server.NewRepositoryAdapter(repos), engine.Scheduler, engine.Queue, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return engine.Run(gctx) })
	return g.Wait()
}

// engineParams maps configuration sections to the engine parameters
func engineParams(cfg *config.Config) service.Params {
	params := service.Params{
		Fetch: feed.FetcherParams{
			Timeout:              cfg.Fetch.Timeout,
			UserAgent:            cfg.Fetch.UserAgent,
			PerDomainConcurrency: cfg.Fetch.PerDomainConcurrency,
			PerDomainDelay:       cfg.Fetch.PerDomainDelay,
		},
		Retry: feed.RetryParams{
			MaxAttempts:  cfg.Backoff.MaxAttempts,
			BaseDelay:    cfg.Backoff.BaseDelay,
			MaxDelay:     cfg.Backoff.MaxDelay,
			Jitter:       cfg.Backoff.Jitter,
			MaxRedirects: cfg.Fetch.MaxRedirects,
		},
		Sanitizer: feed.SanitizerParams{
			Tags:       cfg.Sanitizer.AllowedTags,
			Attributes: cfg.Sanitizer.AllowedAttributes,
			Styles:     cfg.Sanitizer.AllowedStyles,
		},
		Queue: taskqueue.Config{
			Workers:      cfg.Queue.Workers,
			MaxRetries:   cfg.Queue.MaxRetries,
			RetryDelay:   cfg.Queue.RetryDelay,
			TimeLimit:    cfg.Queue.TimeLimit,
			AgeLimit:     cfg.Queue.AgeLimit,
			PollInterval: cfg.Queue.PollInterval,
		},
	}
	if cfg.Schedule.Enabled {
		params.UpdateInterval = cfg.Schedule.UpdateInterval
	}
	return params
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
