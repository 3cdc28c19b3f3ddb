package main

import (
	"fmt"
	"sync"
)

// counterRingCapacity is the bounded ring's default capacity: 2^19 slots.
// It matches the original tutorial's fixed-size counters array.
const counterRingCapacity = 1 << 19

// RayCounter accumulates per-tile statistics. The tiled driver allocates
// exactly one RayCounter per tile (not per ray) and hands it to every
// traversal call the tile's rays make, so a single goroutine ever writes to
// a given counter and no synchronization is needed here.
type RayCounter struct {
	TriangleTests int64
	BoxTests      int64
	Traversals    int64
	Bounces       int64
}

// CounterRing collects finished tile counters under a mutex, up to a fixed
// capacity; once full, further counters are silently dropped rather than
// growing unbounded or blocking the render loop. This is a deliberate
// backpressure valve, not an error condition — a long-running session is
// expected to fill it and keep rendering.
type CounterRing struct {
	mu       sync.Mutex
	counters []*RayCounter
	capacity int
}

func NewCounterRing(capacity int) *CounterRing {
	if capacity <= 0 {
		capacity = counterRingCapacity
	}
	return &CounterRing{capacity: capacity}
}

// Publish appends a tile's counter if there's room, returning false if the
// ring was already full (the counter is simply dropped; the caller does not
// need to retry or log).
func (r *CounterRing) Publish(c *RayCounter) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.counters) >= r.capacity {
		return false
	}
	r.counters = append(r.counters, c)
	return true
}

func (r *CounterRing) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = r.counters[:0]
}

// Snapshot returns a copy of the filled prefix only. The original tutorial's
// periodic stats pass iterates sizeof(counters)/sizeof(counters[0]) — the
// full backing array, including every never-written slot past counterIdx —
// which silently folds a sea of zeroed counters into the min/max/mean. This
// walks only what was actually published.
func (r *CounterRing) Snapshot() []*RayCounter {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*RayCounter, len(r.counters))
	copy(out, r.counters)
	return out
}

// FieldStats holds the aggregate of one RayCounter field across a snapshot.
type FieldStats struct {
	Min, Max, Total int64
	Mean            float64
}

// Stats is the full periodic report: one FieldStats per RayCounter field.
type Stats struct {
	Count         int
	TriangleTests FieldStats
	BoxTests      FieldStats
	Traversals    FieldStats
	Bounces       FieldStats
}

func aggregateField(counters []*RayCounter, get func(*RayCounter) int64) FieldStats {
	if len(counters) == 0 {
		return FieldStats{}
	}
	fs := FieldStats{Min: get(counters[0]), Max: get(counters[0])}
	for _, c := range counters {
		v := get(c)
		if v < fs.Min {
			fs.Min = v
		}
		if v > fs.Max {
			fs.Max = v
		}
		fs.Total += v
	}
	fs.Mean = float64(fs.Total) / float64(len(counters))
	return fs
}

// Aggregate walks only the given (already-filtered) counters — callers
// pass CounterRing.Snapshot() here, never the ring's raw backing slice.
func Aggregate(counters []*RayCounter) Stats {
	return Stats{
		Count:         len(counters),
		TriangleTests: aggregateField(counters, func(c *RayCounter) int64 { return c.TriangleTests }),
		BoxTests:      aggregateField(counters, func(c *RayCounter) int64 { return c.BoxTests }),
		Traversals:    aggregateField(counters, func(c *RayCounter) int64 { return c.Traversals }),
		Bounces:       aggregateField(counters, func(c *RayCounter) int64 { return c.Bounces }),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("tiles=%d triTests(min/max/mean)=%d/%d/%.1f boxTests=%d/%d/%.1f traversals=%d/%d/%.1f bounces=%d/%d/%.1f",
		s.Count,
		s.TriangleTests.Min, s.TriangleTests.Max, s.TriangleTests.Mean,
		s.BoxTests.Min, s.BoxTests.Max, s.BoxTests.Mean,
		s.Traversals.Min, s.Traversals.Max, s.Traversals.Mean,
		s.Bounces.Min, s.Bounces.Max, s.Bounces.Mean,
	)
}

func (s Stats) DetailedString() string {
	return fmt.Sprintf(
		"RayCounter stats over %d tiles:\n"+
			"  triangle tests : min=%d max=%d total=%d mean=%.2f\n"+
			"  box tests      : min=%d max=%d total=%d mean=%.2f\n"+
			"  traversals     : min=%d max=%d total=%d mean=%.2f\n"+
			"  bounces        : min=%d max=%d total=%d mean=%.2f\n",
		s.Count,
		s.TriangleTests.Min, s.TriangleTests.Max, s.TriangleTests.Total, s.TriangleTests.Mean,
		s.BoxTests.Min, s.BoxTests.Max, s.BoxTests.Total, s.BoxTests.Mean,
		s.Traversals.Min, s.Traversals.Max, s.Traversals.Total, s.Traversals.Mean,
		s.Bounces.Min, s.Bounces.Max, s.Bounces.Total, s.Bounces.Mean,
	)
}
