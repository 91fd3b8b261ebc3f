// Package search implements a small weighted graph with flag tagging
// and nearest-flagged-node queries.
//
// Nodes are handles into a contiguous arena owned by the Graph. Search
// scratch state (costs, visited marks) is allocated per query, so a
// query never leaves state behind on the nodes it touched.
package search

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// NodeID identifies a node within its Graph.
type NodeID int

// None is returned by queries that found no node.
const None NodeID = -1

// ErrNotEndpoint is the panic value of Edge.Traverse when called with a
// node that is not one of the edge's endpoints.
var ErrNotEndpoint = errors.New("search: node is not an endpoint of the edge")

// Edge is a weighted connection. Left and Right carry no meaning beyond
// telling the endpoints apart; the edge registered on a node always has
// that node as Left.
type Edge struct {
	Left, Right NodeID
	Weight      float64
}

// Traverse returns the endpoint opposite from and the edge weight. It
// panics if from is neither endpoint.
func (e Edge) Traverse(from NodeID) (NodeID, float64) {
	switch from {
	case e.Left:
		return e.Right, e.Weight
	case e.Right:
		return e.Left, e.Weight
	}
	panic(fmt.Errorf("%w: %d not in (%d, %d)", ErrNotEndpoint, from, e.Left, e.Right))
}

type node struct {
	flags []string
	edges []Edge
}

// Graph is an arena of nodes and their incident edges.
type Graph struct {
	nodes []node
}

func NewGraph() *Graph {
	return new(Graph)
}

// AddNode appends a node without edges or flags.
func (g *Graph) AddNode() NodeID {
	g.nodes = append(g.nodes, node{})
	return NodeID(len(g.nodes) - 1)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) node(n NodeID) *node {
	if n < 0 || int(n) >= len(g.nodes) {
		panic(fmt.Errorf("search: node %d out of range [0,%d)", n, len(g.nodes)))
	}
	return &g.nodes[n]
}

// Edges returns the edges registered on n, in insertion order. The
// returned slice must not be modified.
func (g *Graph) Edges(n NodeID) []Edge {
	return g.node(n).edges
}

// AddNeighbor registers an edge from a to b. If mirror is set, the
// reverse edge is registered on b as well. Nothing prevents adding the
// same pair twice.
func (g *Graph) AddNeighbor(a, b NodeID, weight float64, mirror bool) {
	na := g.node(a)
	na.edges = append(na.edges, Edge{Left: a, Right: b, Weight: weight})
	if mirror {
		nb := g.node(b)
		nb.edges = append(nb.edges, Edge{Left: b, Right: a, Weight: weight})
	}
}

// Link connects a and b in both directions with unit weight.
func (g *Graph) Link(a, b NodeID) {
	g.AddNeighbor(a, b, 1.0, true)
}

// ConnectingEdge returns the first edge registered on a that leads to b.
func (g *Graph) ConnectingEdge(a, b NodeID) (Edge, bool) {
	for _, e := range g.node(a).edges {
		if other, _ := e.Traverse(a); other == b {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *Graph) HasNeighbor(a, b NodeID) bool {
	_, ok := g.ConnectingEdge(a, b)
	return ok
}

// AddFlag tags n. Adding a flag twice has no effect.
func (g *Graph) AddFlag(n NodeID, flag string) {
	nn := g.node(n)
	if !slices.Contains(nn.flags, flag) {
		nn.flags = append(nn.flags, flag)
	}
}

func (g *Graph) HasFlag(n NodeID, flag string) bool {
	return slices.Contains(g.node(n).flags, flag)
}

func (g *Graph) RemoveFlag(n NodeID, flag string) {
	nn := g.node(n)
	nn.flags = slices.DeleteFunc(nn.flags, func(f string) bool {
		return f == flag
	})
}

// ResetFlags removes every flag from n.
func (g *Graph) ResetFlags(n NodeID) {
	g.node(n).flags = nil
}

// Flagged returns the nodes carrying flag, in node order.
func (g *Graph) Flagged(flag string) []NodeID {
	var res []NodeID
	for i := range g.nodes {
		if slices.Contains(g.nodes[i].flags, flag) {
			res = append(res, NodeID(i))
		}
	}
	return res
}

// FindClosestFlagged runs a uniform-cost search from start and returns
// the first node carrying flag to be settled, along with its path cost.
//
// The frontier is a plain slice scanned for its cheapest unsettled
// entry; ties go to the entry inserted first. A node may sit in the
// frontier more than once, later copies are skipped once it is settled.
func (g *Graph) FindClosestFlagged(flag string, start NodeID) (NodeID, float64, bool) {
	g.node(start)
	cost := make([]float64, len(g.nodes))
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	visited := make([]bool, len(g.nodes))
	cost[start] = 0
	frontier := []NodeID{start}
	for len(frontier) > 0 {
		best := -1
		for i, n := range frontier {
			if visited[n] {
				continue
			}
			if best == -1 || cost[n] < cost[frontier[best]] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		cur := frontier[best]
		frontier = slices.Delete(frontier, best, best+1)
		if g.HasFlag(cur, flag) {
			return cur, cost[cur], true
		}
		for _, e := range g.nodes[cur].edges {
			next, w := e.Traverse(cur)
			cost[next] = min(cost[next], cost[cur]+w)
			if !visited[next] {
				frontier = append(frontier, next)
			}
		}
		visited[cur] = true
	}
	return None, math.Inf(1), false
}
