// Command graphsum prints the total weight of every node reachable from a
// root node of a weighted graph, computed on a parallel worker pool.
//
// Usage:
//
//	graphsum [flags] <input_file>
//
// The input holds "N M", then N node weights, then M undirected edges
// "a b". Files ending in .sz are read as snappy framed streams. The sum is
// written to stdout without a trailing newline; logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-graphsum/pkg/config"
	"github.com/dd0wney/cluso-graphsum/pkg/graph"
	"github.com/dd0wney/cluso-graphsum/pkg/health"
	"github.com/dd0wney/cluso-graphsum/pkg/logging"
	"github.com/dd0wney/cluso-graphsum/pkg/metrics"
	"github.com/dd0wney/cluso-graphsum/pkg/parallel"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("graphsum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	workers := fs.Int("workers", config.DefaultWorkers, "Number of worker goroutines")
	queueCapacity := fs.Int("queue-capacity", 0, "Task queue bound (0 = unbounded)")
	root := fs.Int("root", 0, "Index of the node the traversal starts from")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	metricsOut := fs.String("metrics-out", "", "Write Prometheus metrics to this file after the run")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: graphsum [flags] <input_file>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	inputPath := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err == nil {
		err = cfg.ApplyEnv()
	}
	if err != nil {
		fmt.Fprintf(stderr, "graphsum: %v\n", err)
		return exitFailure
	}

	// Flags given on the command line win over file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "queue-capacity":
			cfg.QueueCapacity = *queueCapacity
		case "root":
			cfg.Root = *root
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics-out":
			cfg.MetricsOut = *metricsOut
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "graphsum: %v\n", err)
		return exitFailure
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel)).
		With(logging.Component("graphsum"))

	var reg *metrics.Registry
	if cfg.MetricsOut != "" {
		reg = metrics.NewRegistry()
	}

	timer := logging.StartTimer(logger, "Graph loaded", logging.Path(inputPath))
	g, err := graph.LoadFile(inputPath)
	if err != nil {
		timer.EndError(err)
		fmt.Fprintf(stderr, "graphsum: %v\n", err)
		return exitFailure
	}
	timer.End(logging.Int("nodes", g.NumNodes()), logging.Int("edges", g.NumEdges()))

	res, err := parallel.SumReachable(context.Background(), g, parallel.Options{
		Workers:       cfg.Workers,
		QueueCapacity: cfg.QueueCapacity,
		Root:          cfg.Root,
		Logger:        logger,
		Metrics:       reg,
	})
	if err != nil {
		logger.Error("Traversal failed", logging.Error(err))
		fmt.Fprintf(stderr, "graphsum: %v\n", err)
		return exitFailure
	}

	reportHealth(logger, res)

	if reg != nil {
		if err := reg.WriteTextfile(cfg.MetricsOut); err != nil {
			logger.Warn("Failed to write metrics", logging.Path(cfg.MetricsOut), logging.Error(err))
		}
	}

	fmt.Fprint(stdout, res.Sum)
	return exitOK
}

// reportHealth logs the end-of-run checks, at warn level unless all pass
func reportHealth(logger logging.Logger, res *parallel.Result) {
	checker := health.NewChecker()
	checker.Register("worker_pool", health.TaskFailureCheck(func() (int64, int64, int64) {
		return res.Pool.Completed, res.Pool.Failed, res.Pool.Panicked
	}))
	checker.Register("traversal", health.StuckNodesCheck(func() int {
		return res.Stuck
	}))

	report := checker.Check()
	fields := []logging.Field{
		logging.String("status", string(report.Status)),
		logging.RunID(res.RunID),
	}
	for name, check := range report.Checks {
		fields = append(fields, logging.String(name, check.Message))
	}

	if report.Status == health.StatusHealthy {
		logger.Info("Run health", fields...)
		return
	}
	logger.Warn("Run health", fields...)
}
