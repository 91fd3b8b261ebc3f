package search

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNeighbor(t *testing.T) {
	g := NewGraph()
	tst, nxt, mir := g.AddNode(), g.AddNode(), g.AddNode()

	g.AddNeighbor(tst, nxt, 4.2, false)
	if got, want := g.Edges(tst), []Edge{{tst, nxt, 4.2}}; !slices.Equal(got, want) {
		t.Errorf("edges after unmirrored add: %v, want %v", got, want)
	}
	if n := len(g.Edges(nxt)); n != 0 {
		t.Errorf("unmirrored add registered %d edges on the far node", n)
	}

	g.Link(tst, mir)
	if e := g.Edges(tst)[1]; e != (Edge{tst, mir, 1.0}) {
		t.Errorf("mirrored edge on near node: %v", e)
	}
	if got, want := g.Edges(mir), []Edge{{mir, tst, 1.0}}; !slices.Equal(got, want) {
		t.Errorf("mirrored edges on far node: %v, want %v", got, want)
	}
}

func TestConnectingEdge(t *testing.T) {
	g := NewGraph()
	tst, nbr, nop := g.AddNode(), g.AddNode(), g.AddNode()
	g.AddNeighbor(tst, nbr, 1.0, false)

	if !g.HasNeighbor(tst, nbr) {
		t.Error("neighbor not found")
	}
	if g.HasNeighbor(tst, nop) {
		t.Error("unconnected node reported as neighbor")
	}
	if g.HasNeighbor(nbr, tst) {
		t.Error("unmirrored edge found from the far side")
	}
	e, ok := g.ConnectingEdge(tst, nbr)
	if !ok || e != g.Edges(tst)[0] {
		t.Errorf("ConnectingEdge = %v, %v", e, ok)
	}
	if _, ok := g.ConnectingEdge(tst, nop); ok {
		t.Error("ConnectingEdge found an edge to an unconnected node")
	}
}

func TestTraverse(t *testing.T) {
	l, r, other := NodeID(0), NodeID(1), NodeID(2)
	e := Edge{Left: l, Right: r, Weight: 6.18}
	if n, w := e.Traverse(l); n != r || w != 6.18 {
		t.Errorf("left to right: %d, %v", n, w)
	}
	if n, w := e.Traverse(r); n != l || w != 6.18 {
		t.Errorf("right to left: %d, %v", n, w)
	}
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrNotEndpoint) {
			t.Errorf("traversing from a foreign node panicked with %v", err)
		}
	}()
	e.Traverse(other)
	t.Error("traversing from a foreign node did not panic")
}

func TestFlags(t *testing.T) {
	g := NewGraph()
	n := g.AddNode()
	g.AddFlag(n, "a")
	g.AddFlag(n, "a")
	g.AddFlag(n, "b")
	if !g.HasFlag(n, "a") || !g.HasFlag(n, "b") {
		t.Fatal("flags missing after AddFlag")
	}
	g.RemoveFlag(n, "a")
	if g.HasFlag(n, "a") {
		t.Error("a duplicate flag survived RemoveFlag")
	}
	g.ResetFlags(n)
	if g.HasFlag(n, "b") {
		t.Error("flag survived ResetFlags")
	}
	if got := g.Flagged("b"); len(got) != 0 {
		t.Errorf("Flagged after reset: %v", got)
	}
}

// triangles builds a graph of two triangular rows, A-B-C on top and
// D-E-F below.
func triangles() (*Graph, map[string]NodeID) {
	g := NewGraph()
	ids := make(map[string]NodeID)
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		ids[name] = g.AddNode()
	}
	edges := []struct {
		a, b string
		w    float64
	}{
		{"A", "B", 1},
		{"A", "C", 2},
		{"B", "C", 3},
		{"B", "D", 5},
		{"B", "E", 3},
		{"C", "F", 1},
		{"D", "E", 1},
		{"E", "F", 2},
	}
	for _, e := range edges {
		g.AddNeighbor(ids[e.a], ids[e.b], e.w, true)
	}
	return g, ids
}

func TestFindClosestFlagged(t *testing.T) {
	g, ids := triangles()
	g.AddFlag(ids["D"], "goal")
	g.AddFlag(ids["F"], "goal")

	n, cost, ok := g.FindClosestFlagged("goal", ids["A"])
	if !ok {
		t.Fatal("no flagged node found")
	}
	if n != ids["F"] || cost != 3 {
		t.Errorf("found node %d at cost %v, want F (%d) at cost 3", n, cost, ids["F"])
	}

	// Repeated searches start from fresh costs.
	n, cost, _ = g.FindClosestFlagged("goal", ids["E"])
	if n != ids["D"] || cost != 1 {
		t.Errorf("search from E found %d at cost %v, want D at cost 1", n, cost)
	}
}

func TestFindClosestFlaggedStart(t *testing.T) {
	g, ids := triangles()
	g.AddFlag(ids["A"], "goal")
	if n, cost, ok := g.FindClosestFlagged("goal", ids["A"]); !ok || n != ids["A"] || cost != 0 {
		t.Errorf("flagged start: %d, %v, %v", n, cost, ok)
	}
}

func TestFindClosestFlaggedMissing(t *testing.T) {
	g, ids := triangles()
	island := g.AddNode()
	g.AddFlag(island, "goal")
	for _, flag := range []string{"absent", "goal"} {
		if n, _, ok := g.FindClosestFlagged(flag, ids["A"]); ok || n != None {
			t.Errorf("%s: found unreachable node %d", flag, n)
		}
	}
}

func TestFindClosestFlaggedTies(t *testing.T) {
	g := NewGraph()
	start, first, second := g.AddNode(), g.AddNode(), g.AddNode()
	g.Link(start, first)
	g.Link(start, second)
	g.AddFlag(first, "goal")
	g.AddFlag(second, "goal")
	if n, _, _ := g.FindClosestFlagged("goal", start); n != first {
		t.Errorf("tie resolved to %d, want the first inserted neighbor %d", n, first)
	}
}

func TestPath(t *testing.T) {
	g, ids := triangles()
	p := NewPath(g, ids["A"])
	for _, name := range []string{"C", "F", "E"} {
		if !p.Extend(ids[name]) {
			t.Fatalf("extending to %s failed", name)
		}
	}
	if p.Cost() != 5 || p.End() != ids["E"] || len(p.Nodes()) != 4 {
		t.Errorf("path cost %v end %d nodes %v", p.Cost(), p.End(), p.Nodes())
	}
	if p.Extend(ids["A"]) {
		t.Fatal("extended along a missing edge")
	}
	if !p.Failed() {
		t.Error("path did not fail")
	}
	// Failure is permanent, even for valid steps.
	if p.Extend(ids["D"]) {
		t.Error("failed path accepted a valid step")
	}
	if p.Cost() != 5 || p.End() != ids["E"] {
		t.Errorf("failed path changed: cost %v end %d", p.Cost(), p.End())
	}
}
