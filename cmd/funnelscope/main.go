package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/crimson-sun/funnelscope/internal/config"
	"github.com/crimson-sun/funnelscope/internal/engine"
	"github.com/crimson-sun/funnelscope/internal/engine/segment"
	"github.com/crimson-sun/funnelscope/internal/generator"
	"github.com/crimson-sun/funnelscope/internal/logging"
	"github.com/crimson-sun/funnelscope/internal/output"
	"github.com/crimson-sun/funnelscope/internal/output/file"
	"github.com/crimson-sun/funnelscope/internal/output/multi"
	"github.com/crimson-sun/funnelscope/internal/output/stdout"
	"github.com/crimson-sun/funnelscope/internal/pipeline"
	"github.com/crimson-sun/funnelscope/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logging.Init(cfg.ReportFormat == "json", logging.ParseLevel(cfg.LogLevel))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(cfg)
	case "analyze":
		runAnalyze(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: funnelscope <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  generate   synthesize the clickstream and write the event log")
	fmt.Fprintln(os.Stderr, "  analyze    reduce the event log and print the funnel report")
}

func runGenerate(cfg config.Config) {
	start, err := cfg.StartTime()
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	gen := generator.New(generator.Config{Users: cfg.Users, Seed: cfg.Seed, Start: start})
	events := gen.Generate()

	eventLog := store.NewEventLog(cfg.EventsPath())
	if err := eventLog.Write(events); err != nil {
		log.Fatalf("generate: %v", err)
	}

	fmt.Printf("Event log created at %s\n", eventLog.Path())
	fmt.Printf("Rows: %d\n", len(events))
	fmt.Printf("Users: %d\n", cfg.Users)
}

func runAnalyze(cfg config.Config) {
	var out output.Output = stdout.New(cfg.ReportFormat)
	if cfg.ReportPath != "" {
		out = multi.New(out, file.New(cfg.ReportPath))
	}

	p := pipeline.New(
		store.NewEventLog(cfg.EventsPath()),
		engine.New(segment.NewAnalyzer()),
		out,
	)
	defer p.Close()

	if err := p.Run(context.Background()); err != nil {
		log.Fatalf("analyze: %v", err)
	}
}
