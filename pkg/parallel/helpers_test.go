package parallel

import (
	"math/rand"
	"strconv"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/cluso-graphsum/pkg/graph"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// buildGraph creates a graph with the given weights and undirected edges
func buildGraph(t testing.TB, weights []int64, edges [][2]int) *graph.Graph {
	t.Helper()
	g := graph.New(0)
	for _, w := range weights {
		g.AddNode(w)
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) error = %v", e[0], e[1], err)
		}
	}
	return g
}

// randomGraph creates n nodes with weights in [-50, 1000) and about
// n*degree random undirected edges. Self loops and parallel edges are
// kept on purpose.
func randomGraph(seed int64, n, degree int) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := graph.New(0)
	for i := 0; i < n; i++ {
		g.AddNode(int64(rng.Intn(1050) - 50))
	}
	if n == 0 {
		return g
	}
	for i := 0; i < n*degree; i++ {
		g.AddEdge(rng.Intn(n), rng.Intn(n))
	}
	return g
}

// starGraph creates a hub (node 0) connected to leaves nodes of weight 1
func starGraph(leaves int) *graph.Graph {
	g := graph.New(0)
	g.AddNode(0)
	for i := 0; i < leaves; i++ {
		leaf := g.AddNode(1)
		g.AddEdge(0, leaf)
	}
	return g
}

type metricWriter interface {
	Write(*dto.Metric) error
}

func counterValue(t testing.TB, c metricWriter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t testing.TB, g metricWriter) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetGauge().GetValue()
}
