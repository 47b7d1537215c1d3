package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tymbaca/tour-go/cityio"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/remote"
	"github.com/tymbaca/tour-go/tour"
	"github.com/tymbaca/tour-go/tour/storage/bbolt"
	"github.com/tymbaca/tour-go/tour/storage/inmemory"
	"github.com/tymbaca/tour-go/tour/storage/sqlite"
)

type config struct {
	in       string
	out      string
	workers  int
	remote   string
	random   int
	seed     uint64
	store    string
	db       string
	trace    string
	logLevel string
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("tour", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "input_files/cities.json", "cities file")
	fs.StringVar(&cfg.out, "out", "output_files/result.json", "result file")
	fs.IntVar(&cfg.workers, "workers", 1, "number of local workers")
	fs.StringVar(&cfg.remote, "remote", "", "comma separated worker addresses, overrides -workers")
	fs.IntVar(&cfg.random, "random", 0, "generate this many random cities instead of reading -in")
	fs.Uint64Var(&cfg.seed, "seed", 1, "seed for -random")
	fs.StringVar(&cfg.store, "store", "none", "result cache: none, memory, bbolt or sqlite")
	fs.StringVar(&cfg.db, "db", "tour.db", "database path for -store bbolt and sqlite")
	fs.StringVar(&cfg.trace, "trace", "", "OTLP/HTTP endpoint, tracing is off when empty")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	return cfg, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := run(ctx, cfg); err != nil {
		slog.Error("tour: run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	if err := setupLogger(cfg.logLevel); err != nil {
		return err
	}

	if cfg.trace != "" {
		shutdown, err := tracer.Init(cfg.trace, "tour")
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer shutdown(context.Background())
	}

	points, err := loadPoints(cfg)
	if err != nil {
		return err
	}

	storage, closeStorage, err := openStorage(cfg.store, cfg.db)
	if err != nil {
		return err
	}
	defer closeStorage()

	solver := tour.New(newCluster(cfg), storage)

	res, err := solver.Solve(ctx, points)
	if err != nil {
		return err
	}

	if err := cityio.WriteFile(cfg.out, res); err != nil {
		return err
	}

	slog.Info("tour: result saved",
		"path", cfg.out,
		"distance", res.Distance,
		"closed_length", res.ClosedLength(),
		"stats", tour.GlobalStats.String(),
	)

	return nil
}

func loadPoints(cfg config) ([]tour.Point, error) {
	if cfg.random > 0 {
		return cityio.Random(cfg.random, 100, cfg.seed), nil
	}

	slog.Info("tour: loading input", "path", cfg.in)
	return cityio.LoadFile(cfg.in)
}

func newCluster(cfg config) tour.Cluster {
	if cfg.remote == "" {
		return tour.NewLocalCluster(cfg.workers)
	}

	var addrs []string
	for _, addr := range strings.Split(cfg.remote, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}

	return remote.NewCluster(addrs)
}

func openStorage(kind, path string) (tour.Storage, func(), error) {
	noop := func() {}

	switch kind {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return inmemory.New(), noop, nil
	case "bbolt":
		st, err := bbolt.New(path)
		if err != nil {
			return nil, noop, err
		}
		return st, func() { _ = st.Close() }, nil
	case "sqlite":
		st, err := sqlite.New(path)
		if err != nil {
			return nil, noop, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", kind)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("bad -log-level %q: %w", level, err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	return nil
}
