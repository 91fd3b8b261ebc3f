// Package mask loads bi-level images for the plotter. Pixels of exact
// black are dark; every other color is left alone.
package mask

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/kortschak/qr"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Bitmap is a set of dark pixels.
type Bitmap struct {
	w, h int
	// stride is the number of words per row.
	stride int
	bits   []uint64
}

func New(w, h int) *Bitmap {
	if w < 0 || h < 0 {
		panic("negative bitmap dimensions")
	}
	stride := (w + 63) / 64
	return &Bitmap{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

func (b *Bitmap) Width() int  { return b.w }
func (b *Bitmap) Height() int { return b.h }

func (b *Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		panic("out of range")
	}
	b.bits[y*b.stride+x/64] |= 1 << (x % 64)
}

// Dark reports whether (x, y) is set. Pixels outside the bitmap are not.
func (b *Bitmap) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.bits[y*b.stride+x/64]&(1<<(x%64)) != 0
}

// Count returns the number of dark pixels.
func (b *Bitmap) Count() int {
	n := 0
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.Dark(x, y) {
				n++
			}
		}
	}
	return n
}

// FromImage classifies the pixels of img. Alpha is ignored.
func FromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				b.Set(x-r.Min.X, y-r.Min.Y)
			}
		}
	}
	return b
}

// Decode reads an image in any of the registered formats: PNG, GIF,
// JPEG, BMP, TIFF or WebP.
func Decode(r io.Reader) (*Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	return FromImage(img), nil
}

func Load(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	defer f.Close()
	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// QR encodes text as a QR code with each module scale pixels wide.
func QR(text string, level qr.Level, scale int) (*Bitmap, error) {
	if scale < 1 {
		return nil, fmt.Errorf("mask: invalid QR scale %d", scale)
	}
	code, err := qr.Encode(text, level)
	if err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	b := New(code.Size*scale, code.Size*scale)
	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			if !code.Black(x, y) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					b.Set(x*scale+dx, y*scale+dy)
				}
			}
		}
	}
	return b, nil
}

// ParseLevel parses a QR error correction level, one of L, M, Q or H.
func ParseLevel(s string) (qr.Level, error) {
	switch s {
	case "L", "l":
		return qr.L, nil
	case "M", "m":
		return qr.M, nil
	case "Q", "q":
		return qr.Q, nil
	case "H", "h":
		return qr.H, nil
	}
	return 0, fmt.Errorf("mask: unknown QR level %q", s)
}
