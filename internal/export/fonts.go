package export

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontsOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parsing regular font: %w", fontsErr)
			return
		}
		if boldFont, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parsing bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faceCache hands out font faces for one render. Faces keep glyph caches
// and must not be shared across goroutines, so each render owns its cache.
type faceCache struct {
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

func newFaceCache() (*faceCache, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faceCache{faces: make(map[faceKey]font.Face)}, nil
}

func (c *faceCache) face(bold bool, size float64) font.Face {
	k := faceKey{bold: bold, size: size}
	if f, ok := c.faces[k]; ok {
		return f
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size})
	c.faces[k] = f
	return f
}
