package imgcmp

import (
	"image"
	"image/color"
	"sort"

	"golang.org/x/image/draw"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	sgbWidth  = 256
	sgbHeight = 224
)

// dmgShades are the canonical greys monochrome screenshots are
// mapped to, lightest first.
var dmgShades = [4]color.NRGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
	{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}

// Normalize reduces a window capture to the 160x144 Game Boy
// screen. Captures containing a Super Game Boy border are cropped
// to the centre, and integer scaled captures are scaled down with
// nearest neighbour sampling. Anything else is returned untouched
// so the comparison fails on dimensions.
func Normalize(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if scale, ok := integerScale(w, h, sgbWidth, sgbHeight); ok {
		x0 := b.Min.X + (sgbWidth-ScreenWidth)/2*scale
		y0 := b.Min.Y + (sgbHeight-ScreenHeight)/2*scale
		b = image.Rect(x0, y0, x0+ScreenWidth*scale, y0+ScreenHeight*scale)
		w, h = b.Dx(), b.Dy()
	}

	scale, ok := integerScale(w, h, ScreenWidth, ScreenHeight)
	if !ok {
		return img
	}
	if scale == 1 && b == img.Bounds() && b.Min == (image.Point{}) {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func integerScale(w, h, baseW, baseH int) (int, bool) {
	if w == 0 || w%baseW != 0 || h%baseH != 0 {
		return 0, false
	}
	if w/baseW != h/baseH {
		return 0, false
	}
	return w / baseW, true
}

// ShadeNormalize maps an image with at most four distinct
// luminance levels onto canonical DMG greys by rank, so that
// screenshots taken with different monochrome palettes compare
// equal. Images with more than four levels are returned as is.
func ShadeNormalize(img image.Image) image.Image {
	b := img.Bounds()
	levels := map[uint32]struct{}{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			levels[luminance(img.At(x, y))] = struct{}{}
			if len(levels) > len(dmgShades) {
				return img
			}
		}
	}

	ranked := make([]uint32, 0, len(levels))
	for l := range levels {
		ranked = append(ranked, l)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i] > ranked[j] })

	shade := make(map[uint32]color.NRGBA, len(ranked))
	for i, l := range ranked {
		shade[l] = dmgShades[rankToShade(i, len(ranked), l)]
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, shade[luminance(img.At(x, y))])
		}
	}
	return dst
}

// rankToShade picks the shade for the i'th brightest of n levels.
// With all four levels present rank maps directly; with fewer the
// absolute luminance decides, so a white screen stays white.
func rankToShade(i, n int, l uint32) int {
	if n == len(dmgShades) {
		return i
	}
	s := 3 - int(l*4/0x10000)
	if s < 0 {
		s = 0
	}
	return s
}

// luminance returns the Rec. 601 luma of c scaled to 0-0xFFFF.
func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (299*r + 587*g + 114*b) / 1000
}
