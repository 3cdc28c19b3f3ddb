package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorLerpEndpoints(t *testing.T) {
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}
	require.Equal(t, black, black.Lerp(white, 0))
	require.Equal(t, white, black.Lerp(white, 1))
}

func TestColorLerpMidpoint(t *testing.T) {
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}
	mid := black.Lerp(white, 0.5)
	require.InDelta(t, 127.5, float64(mid.R), 1)
}

func TestColorLerpClampsT(t *testing.T) {
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}
	require.Equal(t, black, black.Lerp(white, -5))
	require.Equal(t, white, black.Lerp(white, 5))
}

func TestTexelToVec3RoundTrip(t *testing.T) {
	packed := quantize(Vec3{1, 0.5, 0})
	v := texelToVec3(packed)
	require.InDelta(t, 1.0, v.X, 1.0/255)
	require.InDelta(t, 0.5, v.Y, 1.0/255)
	require.Equal(t, 0.0, v.Z)
}

func TestQuantizeClampsOutOfRange(t *testing.T) {
	packed := quantize(Vec3{2, -1, 0.5})
	require.Equal(t, uint32(0xff007f), packed)
}
