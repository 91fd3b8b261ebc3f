package search

// Path accumulates a walk through a graph. Once a step fails the path
// stays failed and ignores further steps.
type Path struct {
	g      *Graph
	nodes  []NodeID
	cost   float64
	failed bool
}

func NewPath(g *Graph, start NodeID) *Path {
	g.node(start)
	return &Path{
		g:     g,
		nodes: []NodeID{start},
	}
}

// Extend steps from the current end to to. It reports false, and fails
// the path permanently, if no edge connects them.
func (p *Path) Extend(to NodeID) bool {
	if p.failed {
		return false
	}
	e, ok := p.g.ConnectingEdge(p.End(), to)
	if !ok {
		p.failed = true
		return false
	}
	p.nodes = append(p.nodes, to)
	p.cost += e.Weight
	return true
}

func (p *Path) Failed() bool {
	return p.failed
}

func (p *Path) End() NodeID {
	return p.nodes[len(p.nodes)-1]
}

// Nodes returns the visited nodes, start first.
func (p *Path) Nodes() []NodeID {
	return p.nodes
}

func (p *Path) Cost() float64 {
	return p.cost
}
