package imgcmp

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/cespare/xxhash"
)

// Hash returns a digest of the pixel content of img. Two images
// with the same pixels and size hash equal regardless of their
// concrete type.
func Hash(img image.Image) uint64 {
	b := img.Bounds()
	h := xxhash.New()
	row := make([]byte, 0, b.Dx()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row = row[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			row = append(row, byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8))
		}
		h.Write(row)
	}
	// fold the dimensions in so a 1x4 and 4x1 image differ
	h.Write([]byte{byte(b.Dx()), byte(b.Dx() >> 8), byte(b.Dy()), byte(b.Dy() >> 8)})
	return h.Sum64()
}

// EncodeBase64 returns img as a base64 encoded PNG, the form
// screenshots take in results files and reports. A nil image
// encodes to the empty string.
func EncodeBase64(img image.Image) (string, error) {
	if img == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
