package graph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGraphBuild(t *testing.T) {
	g := New(0)
	a := g.AddNode(3)
	b := g.AddNode(4)
	c := g.AddNode(5)

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := g.AddArc(b, c); err != nil {
		t.Fatalf("AddArc() error = %v", err)
	}
	if err := g.AddEdge(c, c); err != nil {
		t.Fatalf("AddEdge(self) error = %v", err)
	}

	node, err := g.Node(b)
	if err != nil {
		t.Fatalf("Node() error = %v", err)
	}
	want := Node{Index: b, Weight: 4, Neighbours: []int{a, c}}
	if diff := cmp.Diff(want, node); diff != "" {
		t.Errorf("Node(b) mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{c}, g.Neighbours(c)); diff != "" {
		t.Errorf("self loop recorded more than once (-want +got):\n%s", diff)
	}

	// c has only an arc into it from b, and a self loop
	if sum, n := g.ReachableWeight(c); sum != 5 || n != 1 {
		t.Errorf("ReachableWeight(c) = %d, %d; want 5, 1", sum, n)
	}
	if sum, n := g.ReachableWeight(a); sum != 12 || n != 3 {
		t.Errorf("ReachableWeight(a) = %d, %d; want 12, 3", sum, n)
	}
}

func TestGraphOutOfRange(t *testing.T) {
	g := New(2)

	if err := g.AddEdge(0, 2); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("AddEdge(0, 2) error = %v, want ErrNodeOutOfRange", err)
	}
	if err := g.AddArc(-1, 0); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("AddArc(-1, 0) error = %v, want ErrNodeOutOfRange", err)
	}
	if err := g.SetWeight(5, 1); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("SetWeight(5) error = %v, want ErrNodeOutOfRange", err)
	}
	if _, err := g.Node(2); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("Node(2) error = %v, want ErrNodeOutOfRange", err)
	}
	if sum, n := g.ReachableWeight(7); sum != 0 || n != 0 {
		t.Errorf("ReachableWeight(7) = %d, %d; want 0, 0", sum, n)
	}
}
