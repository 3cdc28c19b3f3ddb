package main

import (
	"fmt"
	"time"
)

// FrameStats is the per-frame subset of the teacher's PerformanceStats
// relevant to a ray tracer: frame/build/render timing instead of
// draw-call/LOD/clipping counters, which don't apply to a BVH-only
// pipeline.
type FrameStats struct {
	FrameTime  time.Duration
	BuildTime  time.Duration // TLAS rebuild this frame
	RenderTime time.Duration // tile dispatch + join
	FPS        float64
}

// Profiler tracks per-frame timing with a ring of recent frames, adapted
// from the teacher's Profiler (BeginFrame/EndFrame + history ring), trimmed
// to the markers a headless tracer actually needs.
type Profiler struct {
	enabled bool
	stats   FrameStats

	frameHistory   []FrameStats
	maxHistorySize int
	historyIndex   int
	filled         int

	frameStart time.Time
	buildStart time.Time
	renderStart time.Time
}

func NewProfiler(historySize int) *Profiler {
	if historySize <= 0 {
		historySize = 120
	}
	return &Profiler{
		enabled:        true,
		maxHistorySize: historySize,
		frameHistory:   make([]FrameStats, historySize),
	}
}

func (p *Profiler) BeginFrame() {
	if !p.enabled {
		return
	}
	p.frameStart = time.Now()
	p.stats = FrameStats{}
}

func (p *Profiler) EndFrame() {
	if !p.enabled {
		return
	}
	p.stats.FrameTime = time.Since(p.frameStart)
	if p.stats.FrameTime > 0 {
		p.stats.FPS = 1.0 / p.stats.FrameTime.Seconds()
	}
	p.frameHistory[p.historyIndex] = p.stats
	p.historyIndex = (p.historyIndex + 1) % p.maxHistorySize
	if p.filled < p.maxHistorySize {
		p.filled++
	}
}

func (p *Profiler) BeginBuild() {
	if p.enabled {
		p.buildStart = time.Now()
	}
}

func (p *Profiler) EndBuild() {
	if p.enabled {
		p.stats.BuildTime = time.Since(p.buildStart)
	}
}

func (p *Profiler) BeginRender() {
	if p.enabled {
		p.renderStart = time.Now()
	}
}

func (p *Profiler) EndRender() {
	if p.enabled {
		p.stats.RenderTime = time.Since(p.renderStart)
	}
}

func (p *Profiler) Current() FrameStats { return p.stats }

// AverageStats averages over only the filled prefix of the history ring —
// the same fix raycounter.go's Snapshot applies, kept consistent here even
// though the teacher's own Profiler doesn't make this distinction.
func (p *Profiler) AverageStats() FrameStats {
	if p.filled == 0 {
		return FrameStats{}
	}
	var sum FrameStats
	for i := 0; i < p.filled; i++ {
		s := p.frameHistory[i]
		sum.FrameTime += s.FrameTime
		sum.BuildTime += s.BuildTime
		sum.RenderTime += s.RenderTime
		sum.FPS += s.FPS
	}
	n := time.Duration(p.filled)
	return FrameStats{
		FrameTime:  sum.FrameTime / n,
		BuildTime:  sum.BuildTime / n,
		RenderTime: sum.RenderTime / n,
		FPS:        sum.FPS / float64(p.filled),
	}
}

func (s FrameStats) String() string {
	return fmt.Sprintf("frame=%s build=%s render=%s fps=%.1f", s.FrameTime, s.BuildTime, s.RenderTime, s.FPS)
}
