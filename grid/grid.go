// Package grid lays a search.Graph over a dense 2D raster and adds a
// hop-count scan for the nearest target cell.
package grid

import (
	"fmt"
	"image"
	"math"

	"tasplot.dev/search"
)

// FlagTarget marks a cell that still has to be visited.
const FlagTarget = "target"

// Grid is a width×height lattice of graph nodes. The shape and edges
// are fixed at construction; only node flags change afterwards.
type Grid struct {
	graph    *search.Graph
	width    int
	height   int
	cardinal bool
	diagonal bool
	// cells holds the node of (x, y) at x*height+y.
	cells []search.NodeID
	// coords maps a node back to its cell.
	coords []image.Point
}

// direction is a unit cell offset. North is -Y.
type direction image.Point

var (
	west      = direction{X: -1}
	north     = direction{Y: -1}
	east      = direction{X: 1}
	south     = direction{Y: 1}
	northWest = direction{X: -1, Y: -1}
	northEast = direction{X: 1, Y: -1}
	southWest = direction{X: -1, Y: 1}
	southEast = direction{X: 1, Y: 1}
)

var (
	// wiring is the order in which edges are created.
	cardinalWiring = []direction{west, north, east, south}
	diagonalWiring = []direction{northWest, northEast, southWest, southEast}
	// scanOrder is the order in which a cell's neighbors join the scan
	// frontier. It biases the travel direction between equally distant
	// targets, and existing instruction logs depend on it.
	cardinalScan = []direction{north, west, east, south}
	diagonalScan = []direction{northWest, northEast, southWest, southEast}
)

// New builds a grid with unit edge weights. Cardinal selects
// 4-connectivity, diagonal adds the four diagonal neighbors.
func New(width, height int, cardinal, diagonal bool) *Grid {
	return NewWeighted(width, height, cardinal, diagonal, 1.0)
}

// NewWeighted is like New but weighs diagonal edges with diagonalCost.
func NewWeighted(width, height int, cardinal, diagonal bool, diagonalCost float64) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{
		graph:    search.NewGraph(),
		width:    width,
		height:   height,
		cardinal: cardinal,
		diagonal: diagonal,
		cells:    make([]search.NodeID, width*height),
		coords:   make([]image.Point, 0, width*height),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.cells[x*height+y] = g.graph.AddNode()
			g.coords = append(g.coords, image.Pt(x, y))
		}
	}
	if cardinal {
		g.wire(cardinalWiring, 1.0)
	}
	if diagonal {
		g.wire(diagonalWiring, diagonalCost)
	}
	return g
}

// wire links every cell to its neighbor in each direction, one pass per
// direction. A pair already linked by an earlier pass is skipped.
func (g *Grid) wire(dirs []direction, cost float64) {
	for _, d := range dirs {
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				from := g.cells[x*g.height+y]
				to, ok := g.At(x+d.X, y+d.Y)
				if !ok || g.graph.HasNeighbor(from, to) {
					continue
				}
				g.graph.AddNeighbor(from, to, cost, true)
			}
		}
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Graph returns the underlying graph for generic searches.
func (g *Grid) Graph() *search.Graph {
	return g.graph
}

// At returns the node of cell (x, y), if inside the grid.
func (g *Grid) At(x, y int) (search.NodeID, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return search.None, false
	}
	return g.cells[x*g.height+y], true
}

func (g *Grid) mustAt(x, y int) search.NodeID {
	n, ok := g.At(x, y)
	if !ok {
		panic(fmt.Errorf("grid: cell (%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return n
}

// Coord returns the cell of node n.
func (g *Grid) Coord(n search.NodeID) image.Point {
	return g.coords[n]
}

// Nodes returns every node, column by column.
func (g *Grid) Nodes() []search.NodeID {
	return g.cells
}

func (g *Grid) SetTarget(x, y int) {
	g.graph.AddFlag(g.mustAt(x, y), FlagTarget)
}

func (g *Grid) ClearTarget(x, y int) {
	g.graph.RemoveFlag(g.mustAt(x, y), FlagTarget)
}

func (g *Grid) IsTarget(x, y int) bool {
	n, ok := g.At(x, y)
	return ok && g.graph.HasFlag(n, FlagTarget)
}

// Targets counts the cells still flagged as targets.
func (g *Grid) Targets() int {
	return len(g.graph.Flagged(FlagTarget))
}

// FindClosestTarget scans breadth first from the cell containing (x, y)
// and returns the first target cell reached. Distance is counted in
// hops along the grid's edges; edge weights are ignored. If unset is
// true the target flag of the found cell is cleared.
//
// Positions outside the grid start from the nearest edge cell.
func (g *Grid) FindClosestTarget(x, y float64, unset bool) (bool, int, int) {
	if len(g.cells) == 0 {
		return false, 0, 0
	}
	sx := clamp(int(math.Floor(x)), 0, g.width-1)
	sy := clamp(int(math.Floor(y)), 0, g.height-1)
	checked := make([]bool, g.graph.Len())
	queue := []search.NodeID{g.mustAt(sx, sy)}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if checked[n] {
			continue
		}
		checked[n] = true
		if g.graph.HasFlag(n, FlagTarget) {
			if unset {
				g.graph.RemoveFlag(n, FlagTarget)
			}
			c := g.coords[n]
			return true, c.X, c.Y
		}
		queue = g.enqueue(queue, n, checked, cardinalScan)
		if g.diagonal {
			queue = g.enqueue(queue, n, checked, diagonalScan)
		}
	}
	return false, 0, 0
}

func (g *Grid) enqueue(queue []search.NodeID, from search.NodeID, checked []bool, dirs []direction) []search.NodeID {
	c := g.coords[from]
	for _, d := range dirs {
		to, ok := g.At(c.X+d.X, c.Y+d.Y)
		if !ok || checked[to] || !g.graph.HasNeighbor(from, to) {
			continue
		}
		queue = append(queue, to)
	}
	return queue
}

func clamp(v, lo, hi int) int {
	return max(min(v, hi), lo)
}
