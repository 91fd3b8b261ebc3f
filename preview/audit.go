package preview

import (
	"cmp"
	"image"
	"slices"

	"tasplot.dev/plotter"
)

// Stray is an inked pixel that is not dark in the mask.
type Stray struct {
	Pixel image.Point
	// Ticks are the ticks that inked the pixel.
	Ticks []int
}

// Result lists the differences between a mask and a replay.
type Result struct {
	// Missed are dark mask pixels never inked, in mask coordinates.
	Missed []image.Point
	// Strays are in screen coordinates.
	Strays []Stray
}

func (r Result) Clean() bool {
	return len(r.Missed) == 0 && len(r.Strays) == 0
}

// Audit compares the mask m, placed at offset on the screen, with what
// was drawn on p.
func Audit(m plotter.Mask, offset image.Point, p *Paper) Result {
	var res Result
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Dark(x, y) && !p.Inked(image.Pt(x, y).Add(offset)) {
				res.Missed = append(res.Missed, image.Pt(x, y))
			}
		}
	}
	var idx *Index
	for _, px := range sortedPixels(p.ink) {
		mp := px.Sub(offset)
		if mp.In(image.Rect(0, 0, m.Width(), m.Height())) && m.Dark(mp.X, mp.Y) {
			continue
		}
		if idx == nil {
			idx = NewIndex(p.segs)
		}
		res.Strays = append(res.Strays, Stray{Pixel: px, Ticks: idx.Ticks(px)})
	}
	return res
}

func sortedPixels(set map[image.Point]bool) []image.Point {
	pts := make([]image.Point, 0, len(set))
	for p := range set {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b image.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return pts
}
