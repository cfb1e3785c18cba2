package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/dd0wney/cluso-graphsum/pkg/graph"
	"github.com/dd0wney/cluso-graphsum/pkg/parallel"
)

func main() {
	numNodes := flag.Int("nodes", 100000, "Number of nodes")
	avgDegree := flag.Int("degree", 4, "Average degree per node")
	numWorkers := flag.Int("workers", 0, "Number of worker goroutines (0 = CPU count)")
	queueCapacity := flag.Int("queue-capacity", 0, "Task queue bound (0 = unbounded)")
	input := flag.String("input", "", "Benchmark a graph file instead of a random graph")
	seed := flag.Int64("seed", 1, "Random graph seed")
	flag.Parse()

	if *numWorkers == 0 {
		*numWorkers = runtime.NumCPU()
	}

	var g *graph.Graph
	if *input != "" {
		fmt.Printf("📂 Loading %s...\n", *input)
		loaded, err := graph.LoadFile(*input)
		if err != nil {
			log.Fatalf("Failed to load graph: %v", err)
		}
		g = loaded
	} else {
		fmt.Printf("📊 Creating test graph...\n")
		g = createTestGraph(*numNodes, *avgDegree, *seed)
	}

	fmt.Printf("🔬 Parallel Reachable Sum Benchmark\n")
	fmt.Printf("======================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes:       %d\n", g.NumNodes())
	fmt.Printf("  Edges:       %d\n", g.NumEdges())
	fmt.Printf("  Queue Cap:   %d\n", *queueCapacity)
	fmt.Printf("  CPU Cores:   %d\n", runtime.NumCPU())
	fmt.Printf("  Workers:     %d\n\n", *numWorkers)

	fmt.Printf("🐌 Testing Sequential walk...\n")
	seqStats := benchmarkSequential(g)
	printStats(seqStats, seqStats)

	counts := []int{1, 2, 4}
	if *numWorkers > 4 {
		counts = append(counts, *numWorkers)
	}
	results := make([]BenchmarkStats, 0, len(counts))
	for _, workers := range counts {
		fmt.Printf("⚡ Testing Parallel traversal (%d workers)...\n", workers)
		stats := benchmarkParallel(g, workers, *queueCapacity)
		printStats(stats, seqStats)
		if stats.Sum != seqStats.Sum {
			log.Fatalf("Sum mismatch with %d workers: got %d, want %d", workers, stats.Sum, seqStats.Sum)
		}
		results = append(results, stats)
	}

	fmt.Printf("📊 Summary\n")
	fmt.Printf("======================================\n")
	fmt.Printf("Sequential:    %s (baseline)\n", seqStats.Duration)
	best := results[0]
	for _, r := range results {
		fmt.Printf("Parallel (%d): %s (%.2fx, %d inline, %d duplicates)\n",
			r.Workers, r.Duration, speedup(seqStats, r), r.Inline, r.Duplicates)
		if r.Duration < best.Duration {
			best = r
		}
	}

	bestSpeedup := speedup(seqStats, best)
	fmt.Printf("\n🎯 Best Speedup: %.2fx with %d workers\n", bestSpeedup, best.Workers)

	if bestSpeedup >= 2.0 {
		fmt.Printf("⚡ Good! Significant parallel speedup\n")
	} else {
		fmt.Printf("💡 Modest speedup - one task per node is fine grained; try larger graphs\n")
	}
}

// BenchmarkStats is the outcome of one timed traversal
type BenchmarkStats struct {
	Workers      int
	Sum          int64
	NodesVisited int
	Duplicates   int64
	Inline       int64
	Duration     time.Duration
	Throughput   float64
}

func createTestGraph(numNodes, avgDegree int, seed int64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := graph.New(numNodes)
	for i := 0; i < numNodes; i++ {
		if err := g.SetWeight(i, int64(rng.Intn(1000))); err != nil {
			log.Fatalf("Failed to set weight: %v", err)
		}
	}

	// Random edges, plus a chain so everything is reachable from node 0
	for i := 1; i < numNodes; i++ {
		g.AddEdge(i-1, i)
	}
	numEdges := numNodes * (avgDegree - 1)
	for i := 0; i < numEdges; i++ {
		from := rng.Intn(numNodes)
		to := rng.Intn(numNodes)
		if from != to {
			g.AddEdge(from, to)
		}
	}

	return g
}

func benchmarkSequential(g *graph.Graph) BenchmarkStats {
	start := time.Now()
	sum, visited := g.ReachableWeight(0)
	duration := time.Since(start)

	return BenchmarkStats{
		Sum:          sum,
		NodesVisited: visited,
		Duration:     duration,
		Throughput:   float64(visited) / duration.Seconds(),
	}
}

func benchmarkParallel(g *graph.Graph, workers, queueCapacity int) BenchmarkStats {
	res, err := parallel.SumReachable(context.Background(), g, parallel.Options{
		Workers:       workers,
		QueueCapacity: queueCapacity,
	})
	if err != nil {
		log.Fatalf("Parallel traversal failed: %v", err)
	}

	return BenchmarkStats{
		Workers:      workers,
		Sum:          res.Sum,
		NodesVisited: res.Visited,
		Duplicates:   res.Duplicates,
		Inline:       res.Pool.Inline,
		Duration:     res.Duration,
		Throughput:   float64(res.Visited) / res.Duration.Seconds(),
	}
}

func printStats(s, baseline BenchmarkStats) {
	fmt.Printf("   Sum:           %d\n", s.Sum)
	fmt.Printf("   Nodes Visited: %d\n", s.NodesVisited)
	fmt.Printf("   Duration:      %s\n", s.Duration)
	fmt.Printf("   Throughput:    %.0f nodes/sec\n", s.Throughput)
	if s.Workers > 0 {
		fmt.Printf("   Speedup:       %.2fx\n", speedup(baseline, s))
	}
	fmt.Println()
}

func speedup(baseline, s BenchmarkStats) float64 {
	return baseline.Duration.Seconds() / s.Duration.Seconds()
}
