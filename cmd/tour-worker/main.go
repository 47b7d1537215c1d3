package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"

	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/remote"
)

func main() {
	listen := flag.String("listen", "0.0.0.0:7070", "address to serve on")
	traceEndpoint := flag.String("trace", "", "OTLP/HTTP endpoint, tracing is off when empty")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("tour-worker: bad -log-level", "value", *logLevel)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *traceEndpoint != "" {
		shutdown, err := tracer.Init(*traceEndpoint, "tour-worker")
		if err != nil {
			slog.Error("tour-worker: init tracer", "err", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		slog.Error("tour-worker: listen", "addr", *listen, "err", err)
		os.Exit(1)
	}

	if err := remote.Serve(ctx, lis); err != nil {
		slog.Error("tour-worker: serve", "err", err)
		os.Exit(1)
	}
}
