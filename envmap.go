package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// EnvMap is a longitude/latitude HDR environment map: width, height, and
// w*h*3 float32 RGB samples. No HDR decoding library appears anywhere in
// the example pack, so this is a small custom binary reader rather than a
// wrapped third-party codec (see DESIGN.md).
//
// File layout: two little-endian uint32s (width, height), then
// width*height*3 little-endian float32 values in row-major RGB order.
type EnvMap struct {
	Width, Height int
	Pixels        []float32 // len == Width*Height*3
}

// LoadEnvMap reads the file and takes the square root of every sample at
// load time — the original tutorial's sky loader does this once up front
// so the per-pixel lookup in Lookup stays a single array read, trading a
// one-time O(w*h) pass for a cheap per-ray sample.
func LoadEnvMap(path string) (*EnvMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading environment map %q: %w", path, err)
	}
	defer f.Close()

	var header [8]byte
	if _, err := f.Read(header[:]); err != nil {
		return nil, fmt.Errorf("loading environment map %q: reading header: %w", path, err)
	}
	width := int(binary.LittleEndian.Uint32(header[0:4]))
	height := int(binary.LittleEndian.Uint32(header[4:8]))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("loading environment map %q: invalid dimensions %dx%d", path, width, height)
	}

	n := width * height * 3
	raw := make([]byte, n*4)
	if _, err := readFull(f, raw); err != nil {
		return nil, fmt.Errorf("loading environment map %q: reading samples: %w", path, err)
	}

	pixels := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		v := math.Float32frombits(bits)
		pixels[i] = float32(math.Sqrt(float64(v)))
	}
	return &EnvMap{Width: width, Height: height, Pixels: pixels}, nil
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, fmt.Errorf("unexpected EOF")
		}
	}
	return total, nil
}

// Lookup samples the map along direction d using a longitude/latitude
// (equirectangular) projection: longitude from atan2(z,x), shifted so that
// atan2 = -pi maps to column 0, and latitude from acos(y). Pixel coordinates
// past the map's edges clamp to the nearest edge; they do not wrap around.
func (e *EnvMap) Lookup(d Vec3) Vec3 {
	if e.Width == 0 || e.Height == 0 {
		return Vec3{}
	}
	u := (1 + math.Atan2(d.Z, d.X)/math.Pi) * 0.5
	v := math.Acos(d.Y) / math.Pi
	x := int(u * float64(e.Width))
	y := int(v * float64(e.Height))
	if x < 0 {
		x = 0
	}
	if x >= e.Width {
		x = e.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= e.Height {
		y = e.Height - 1
	}
	idx := (y*e.Width + x) * 3
	return Vec3{
		X: float64(e.Pixels[idx]),
		Y: float64(e.Pixels[idx+1]),
		Z: float64(e.Pixels[idx+2]),
	}
}
