package imgcmp

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNoReference is returned when a test has no reference image.
var ErrNoReference = errors.New("imgcmp: no reference image")

// References loads reference images from disk, keeping recently
// used ones decoded in memory. DMG and CGB variants of a test
// often share a reference, as do many suite pass screens.
type References struct {
	cache *lru.Cache[string, image.Image]
}

// NewReferences returns a loader caching up to size images.
func NewReferences(size int) *References {
	c, err := lru.New[string, image.Image](size)
	if err != nil {
		panic(err) // only errors on non-positive size
	}
	return &References{cache: c}
}

// Load returns the decoded image at path. A missing file is
// reported as ErrNoReference.
func (r *References) Load(path string) (image.Image, error) {
	if img, ok := r.cache.Get(path); ok {
		return img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoReference, path)
		}
		return nil, err
	}

	r.cache.Add(path, img)
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
