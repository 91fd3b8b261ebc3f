package preview

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/paulmach/orb"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Render draws strokes onto img, with screen pixels scale image pixels
// wide and lines width image pixels thick. Pixel centers are at half
// coordinates.
func Render(img draw.Image, strokes []orb.LineString, scale, width float64) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(color.Black)
	pt := func(p orb.Point) fixed.Point26_6 {
		return rasterx.ToFixedP((p[0]+.5)*scale-float64(b.Min.X), (p[1]+.5)*scale-float64(b.Min.Y))
	}
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		dasher.Start(pt(s[0]))
		if len(s) == 1 {
			// A dot.
			dasher.Line(pt(orb.Point{s[0][0] + .25, s[0][1]}))
		}
		for _, p := range s[1:] {
			dasher.Line(pt(p))
		}
		dasher.Stop(false)
	}
	dasher.Draw()
}

// Image renders the paper on a white background the size of the screen
// bounds.
func Image(p *Paper, screen image.Rectangle, scale, width float64) *image.RGBA {
	r := image.Rect(0, 0, int(float64(screen.Dx())*scale), int(float64(screen.Dy())*scale))
	img := image.NewRGBA(r)
	draw.Draw(img, r, image.White, image.Point{}, draw.Src)
	strokes := make([]orb.LineString, len(p.strokes))
	for i, s := range p.strokes {
		strokes[i] = make(orb.LineString, len(s))
		for j, pt := range s {
			strokes[i][j] = orb.Point{pt[0] - float64(screen.Min.X), pt[1] - float64(screen.Min.Y)}
		}
	}
	Render(img, strokes, scale, width)
	return img
}
