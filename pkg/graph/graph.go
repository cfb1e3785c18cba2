package graph

import "fmt"

// Node is a read-only view of one node.
type Node struct {
	Index      int
	Weight     int64
	Neighbours []int
}

// Graph is an adjacency-list graph with an int64 weight per node. Node
// indices are dense, starting at 0. A Graph is not safe for concurrent
// mutation; concurrent reads are fine once it is built.
type Graph struct {
	weights   []int64
	adjacency [][]int
	edges     int
}

// New creates a graph with n nodes of weight 0 and no edges.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{
		weights:   make([]int64, n),
		adjacency: make([][]int, n),
	}
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.weights)
}

// NumEdges returns the number of edges added with AddEdge or AddArc.
func (g *Graph) NumEdges() int {
	return g.edges
}

// Contains reports whether idx names a node of g.
func (g *Graph) Contains(idx int) bool {
	return idx >= 0 && idx < len(g.weights)
}

// AddNode appends a node and returns its index.
func (g *Graph) AddNode(weight int64) int {
	g.weights = append(g.weights, weight)
	g.adjacency = append(g.adjacency, nil)
	return len(g.weights) - 1
}

// SetWeight replaces the weight of node idx.
func (g *Graph) SetWeight(idx int, weight int64) error {
	if !g.Contains(idx) {
		return fmt.Errorf("%w: %d", ErrNodeOutOfRange, idx)
	}
	g.weights[idx] = weight
	return nil
}

// AddEdge adds an undirected edge. A self loop is recorded once.
func (g *Graph) AddEdge(a, b int) error {
	if err := g.checkPair(a, b); err != nil {
		return err
	}
	g.adjacency[a] = append(g.adjacency[a], b)
	if a != b {
		g.adjacency[b] = append(g.adjacency[b], a)
	}
	g.edges++
	return nil
}

// AddArc adds a directed edge from -> to.
func (g *Graph) AddArc(from, to int) error {
	if err := g.checkPair(from, to); err != nil {
		return err
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	g.edges++
	return nil
}

func (g *Graph) checkPair(a, b int) error {
	if !g.Contains(a) {
		return fmt.Errorf("%w: %d", ErrNodeOutOfRange, a)
	}
	if !g.Contains(b) {
		return fmt.Errorf("%w: %d", ErrNodeOutOfRange, b)
	}
	return nil
}

// Weight returns the weight of node idx. It panics if idx is out of range.
func (g *Graph) Weight(idx int) int64 {
	return g.weights[idx]
}

// Neighbours returns the adjacency list of node idx. The slice is shared
// with the graph and must not be modified.
func (g *Graph) Neighbours(idx int) []int {
	return g.adjacency[idx]
}

// Node returns a copy of node idx.
func (g *Graph) Node(idx int) (Node, error) {
	if !g.Contains(idx) {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeOutOfRange, idx)
	}
	neighbours := make([]int, len(g.adjacency[idx]))
	copy(neighbours, g.adjacency[idx])
	return Node{Index: idx, Weight: g.weights[idx], Neighbours: neighbours}, nil
}

// ReachableWeight walks g sequentially from root and returns the summed
// weight and the count of reachable nodes. It is the single-threaded
// reference for the parallel traversal.
func (g *Graph) ReachableWeight(root int) (int64, int) {
	if !g.Contains(root) {
		return 0, 0
	}

	seen := make([]bool, len(g.weights))
	stack := []int{root}
	seen[root] = true

	var sum int64
	count := 0
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sum += g.weights[idx]
		count++

		for _, n := range g.adjacency[idx] {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return sum, count
}
