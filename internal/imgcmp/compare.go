// Package imgcmp judges emulator screenshots against reference
// images.
package imgcmp

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/thelolagemann/shootout/internal/types"
)

// Tolerance controls how much two images may differ and still
// be judged a pass.
type Tolerance struct {
	// Pixels is the number of differing pixels allowed.
	Pixels int
	// Channel is the per channel difference (0-255) under which
	// two pixels are considered equal.
	Channel int
}

// Difference describes how two equally sized images differ.
type Difference struct {
	// Pixels is the number of pixels that differ beyond the
	// channel tolerance.
	Pixels int
	// Error is the root of the accumulated squared channel error.
	Error int64
	// Highlight is the expected image with differing pixels
	// painted over in translucent red.
	Highlight image.Image
}

// Comparator compares screenshots under a fixed Tolerance.
type Comparator struct {
	Tolerance Tolerance
}

// NewComparator returns a Comparator for tol.
func NewComparator(tol Tolerance) *Comparator {
	return &Comparator{Tolerance: tol}
}

// Compare returns Pass when actual matches expected within
// tolerance. Images of different dimensions always Fail.
func (c *Comparator) Compare(actual, expected image.Image) types.Verdict {
	d, err := c.Diff(actual, expected)
	if err != nil {
		return types.Fail
	}
	if d.Pixels > c.Tolerance.Pixels {
		return types.Fail
	}
	return types.Pass
}

// Diff computes the Difference between actual and expected. An
// error is returned when their bounds are not the same size.
func (c *Comparator) Diff(actual, expected image.Image) (Difference, error) {
	b1 := actual.Bounds()
	b2 := expected.Bounds()
	if b1.Dx() != b2.Dx() || b1.Dy() != b2.Dy() {
		return Difference{Pixels: math.MaxInt, Error: math.MaxInt64}, fmt.Errorf("image bounds not equal: %+v, %+v", b1, b2)
	}

	highlight := image.NewNRGBA(image.Rect(0, 0, b2.Dx(), b2.Dy()))
	draw.Draw(highlight, highlight.Bounds(), expected, b2.Min, draw.Src)

	limit := uint32(c.Tolerance.Channel) * 0x101
	var accumError uint64
	pixels := 0
	for y := 0; y < b1.Dy(); y++ {
		for x := 0; x < b1.Dx(); x++ {
			r1, g1, bl1, a1 := actual.At(b1.Min.X+x, b1.Min.Y+y).RGBA()
			r2, g2, bl2, a2 := expected.At(b2.Min.X+x, b2.Min.Y+y).RGBA()

			if absDiff(r1, r2) <= limit && absDiff(g1, g2) <= limit &&
				absDiff(bl1, bl2) <= limit && absDiff(a1, a2) <= limit {
				continue
			}

			pixels++
			accumError += sqDiffUInt32(r1, r2) + sqDiffUInt32(g1, g2) + sqDiffUInt32(bl1, bl2) + sqDiffUInt32(a1, a2)
			highlight.Set(x, y, color.NRGBA{R: 255, A: 128})
		}
	}

	return Difference{
		Pixels:    pixels,
		Error:     int64(math.Sqrt(float64(accumError))),
		Highlight: highlight,
	}, nil
}

func absDiff(x, y uint32) uint32 {
	if x > y {
		return x - y
	}
	return y - x
}

func sqDiffUInt32(x, y uint32) uint64 {
	d := uint64(absDiff(x, y))
	return d * d
}
