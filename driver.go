package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

const defaultTileSize = 8

type tileRect struct {
	x0, y0, x1, y1 int // half-open
}

// TiledDriver renders one frame at a time by splitting the framebuffer into
// 8x8 tiles dispatched to a fixed worker pool, the same tile-queue/worker
// shape as the teacher's renderer_parallel.go ParallelRenderer, generalized
// from rasterized triangles to traced primary rays.
type TiledDriver struct {
	Width, Height int
	NumWorkers    int
	Shader        Shader
	Ring          *CounterRing

	StatsInterval time.Duration
	lastStats     time.Time

	Accumulator []Vec3
}

func NewTiledDriver(width, height int, shader Shader, ring *CounterRing) *TiledDriver {
	return &TiledDriver{
		Width:         width,
		Height:        height,
		NumWorkers:    runtime.NumCPU(),
		Shader:        shader,
		Ring:          ring,
		StatsInterval: 60 * time.Second,
		Accumulator:   make([]Vec3, width*height),
	}
}

func (d *TiledDriver) tiles() []tileRect {
	var out []tileRect
	for y := 0; y < d.Height; y += defaultTileSize {
		for x := 0; x < d.Width; x += defaultTileSize {
			out = append(out, tileRect{
				x0: x, y0: y,
				x1: minInt(x+defaultTileSize, d.Width),
				y1: minInt(y+defaultTileSize, d.Height),
			})
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RenderFrame renders exactly one frame: dispatch tiles to the worker pool,
// join, then quantize the float accumulator into a 0x00RRGGBB framebuffer.
// Callers are expected to have already called scene.RebuildTLAS() for this
// frame's transforms.
func (d *TiledDriver) RenderFrame(scene *Scene, cam Camera) []uint32 {
	tileQueue := make(chan tileRect, len(d.tiles()))
	for _, t := range d.tiles() {
		tileQueue <- t
	}
	close(tileQueue)

	numWorkers := d.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go d.worker(&wg, tileQueue, scene, cam)
	}
	wg.Wait()

	d.maybeReportStats()

	framebuffer := make([]uint32, d.Width*d.Height)
	for i, c := range d.Accumulator {
		framebuffer[i] = quantize(c)
	}
	return framebuffer
}

func (d *TiledDriver) worker(wg *sync.WaitGroup, tileQueue <-chan tileRect, scene *Scene, cam Camera) {
	defer wg.Done()
	for tile := range tileQueue {
		counter := &RayCounter{}
		for y := tile.y0; y < tile.y1; y++ {
			v := (float64(y) + 0.5) / float64(d.Height)
			for x := tile.x0; x < tile.x1; x++ {
				u := (float64(x) + 0.5) / float64(d.Width)
				ray := cam.PrimaryRay(u, v)
				color := Trace(scene, d.Shader, &ray, counter, 0)
				d.Accumulator[y*d.Width+x] = color
			}
		}
		d.Ring.Publish(counter)
	}
}

func (d *TiledDriver) maybeReportStats() {
	if d.StatsInterval <= 0 {
		return
	}
	if time.Since(d.lastStats) < d.StatsInterval {
		return
	}
	stats := Aggregate(d.Ring.Snapshot())
	fmt.Println(stats.DetailedString())
	d.lastStats = time.Now()
}
