package preview

import (
	"image"
	"slices"

	"github.com/dhconnelly/rtreego"
	"tasplot.dev/bresenham"
)

type segEntry struct {
	seg  Segment
	bbox rtreego.Rect
}

func (e *segEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// Index finds the ticks that inked a pixel.
type Index struct {
	tree *rtreego.Rtree
}

func NewIndex(segs []Segment) *Index {
	tree := rtreego.NewTree(2, 25, 50)
	for _, s := range segs {
		// Pad by half a pixel so single pixel segments have an area.
		minX, maxX := min(s.From.X, s.To.X), max(s.From.X, s.To.X)
		minY, maxY := min(s.From.Y, s.To.Y), max(s.From.Y, s.To.Y)
		bbox, err := rtreego.NewRect(
			rtreego.Point{float64(minX) - .5, float64(minY) - .5},
			[]float64{float64(maxX-minX) + 1, float64(maxY-minY) + 1},
		)
		if err != nil {
			// Valid by construction.
			panic(err)
		}
		tree.Insert(&segEntry{seg: s, bbox: bbox})
	}
	return &Index{tree: tree}
}

// Ticks returns the ticks whose movement inked px, in order.
func (i *Index) Ticks(px image.Point) []int {
	q := rtreego.Point{float64(px.X), float64(px.Y)}.ToRect(.25)
	var ticks []int
	for _, obj := range i.tree.SearchIntersect(q) {
		s := obj.(*segEntry).seg
		for p := range bresenham.Points(s.From, s.To) {
			if p == px {
				ticks = append(ticks, s.Tick)
				break
			}
		}
	}
	slices.Sort(ticks)
	return ticks
}
