package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// TextureCoord is a UV pair, kept under the teacher's name since TriEx and
// the OBJ loader both carry it unchanged.
type TextureCoord struct {
	U, V float64
}

// Surface is a decoded image stored as packed 0x00RRGGBB pixels, the same
// convention the tiled driver's framebuffer uses, so a sampled texel can be
// fed straight into texelToVec3 without a second color representation.
type Surface struct {
	Width, Height int
	Pixels        []uint32
}

func NewSurface(width, height int) *Surface {
	return &Surface{Width: width, Height: height, Pixels: make([]uint32, width*height)}
}

// LoadSurfaceFromFile decodes a PNG or JPEG (the stdlib image package's
// registered formats) into a Surface, adapted from the teacher's
// LoadTextureFromFile/NewTextureFromImage pair.
func LoadSurfaceFromFile(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	surf := NewSurface(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			surf.Pixels[y*width+x] = uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
		}
	}
	return surf, nil
}

// Sample does nearest-neighbor lookup with UV wrapped via floating modulo,
// matching the teacher's WrapRepeat behavior as the default (and only)
// wrap mode — the mesh path never needs clamp/mirror per spec.md's scope.
func (s *Surface) Sample(uv TextureCoord) uint32 {
	if s.Width == 0 || s.Height == 0 {
		return 0
	}
	u := wrapUnit(uv.U)
	v := wrapUnit(uv.V)
	x := int(u * float64(s.Width))
	y := int(v * float64(s.Height))
	if x >= s.Width {
		x = s.Width - 1
	}
	if y >= s.Height {
		y = s.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return s.Pixels[y*s.Width+x]
}

func wrapUnit(v float64) float64 {
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}
	return v
}
