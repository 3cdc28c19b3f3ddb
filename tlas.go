package main

import (
	"math"
	"sort"
)

// TLASNode mirrors BLASNode's single-field discriminator: IsLeaf selects
// whether LeftFirst means "the instance at this index" or "the left child,
// with LeftFirst+1 the right".
type TLASNode struct {
	Min, Max  Vec3
	LeftFirst uint32
	IsLeaf    bool
}

// TLAS is the top-level acceleration structure over a scene's BLASInstances.
//
// The original tutorial's TLAS::Build is a hardcoded placeholder: it always
// allocates exactly two leaves, wiring instance 0 and instance 1 under a
// root box fixed at [-100,100]^3, which only happens to look correct for
// the tutorial's own 2-instance demo scene and falls apart for any other N.
// BuildQuick below replaces it with a real top-down median-split build
// that produces a valid binary tree over any number of instances.
type TLAS struct {
	Instances []*BLASInstance
	Nodes     []TLASNode
	NodesUsed uint32
}

func NewTLAS(instances []*BLASInstance) *TLAS {
	return &TLAS{Instances: instances}
}

type tlasBuildRange struct {
	nodeIdx    uint32
	start, end int // half-open range into order
}

// BuildQuick performs a top-down median split over instance centers,
// choosing the split axis as the largest extent of the range's combined
// bounds each time. It handles N==0 (empty tree) and N==1 (single leaf
// root) directly. Every range is fully sorted before it is halved, so a
// general build costs O(N log² N): O(N log N) sorting per tree level.
func (t *TLAS) BuildQuick() {
	n := len(t.Instances)
	if n == 0 {
		t.Nodes = nil
		t.NodesUsed = 0
		return
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	if n == 1 {
		t.Nodes = make([]TLASNode, 2)
		t.Nodes[0] = TLASNode{
			Min: t.Instances[0].Bounds.Min, Max: t.Instances[0].Bounds.Max,
			LeftFirst: 0, IsLeaf: true,
		}
		t.NodesUsed = 1
		return
	}

	t.Nodes = make([]TLASNode, 2*n)
	t.NodesUsed = 2 // index 1 unused, matching the BLAS node pool convention

	queue := []tlasBuildRange{{nodeIdx: 0, start: 0, end: n}}
	for len(queue) > 0 {
		r := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		box := EmptyAABB()
		for i := r.start; i < r.end; i++ {
			box.GrowBox(t.Instances[order[i]].Bounds)
		}
		node := &t.Nodes[r.nodeIdx]
		node.Min, node.Max = box.Min, box.Max

		if r.end-r.start == 1 {
			node.IsLeaf = true
			node.LeftFirst = uint32(order[r.start])
			continue
		}

		axis := box.Extent().largestAxis()
		slice := order[r.start:r.end]
		sort.Slice(slice, func(i, j int) bool {
			return t.Instances[slice[i]].Bounds.Center().Component(axis) <
				t.Instances[slice[j]].Bounds.Center().Component(axis)
		})

		mid := r.start + (r.end-r.start)/2
		leftIdx := t.NodesUsed
		rightIdx := t.NodesUsed + 1
		t.NodesUsed += 2

		node.IsLeaf = false
		node.LeftFirst = leftIdx

		queue = append(queue,
			tlasBuildRange{nodeIdx: leftIdx, start: r.start, end: mid},
			tlasBuildRange{nodeIdx: rightIdx, start: mid, end: r.end},
		)
	}
}

func (e Vec3) largestAxis() int {
	if e.X >= e.Y && e.X >= e.Z {
		return 0
	}
	if e.Y >= e.Z {
		return 1
	}
	return 2
}

// Intersect walks the TLAS with the same iterative, nearer-child-first
// structure as BLAS.Intersect, dispatching leaves into the instance's own
// local-space traversal.
func (t *TLAS) Intersect(ray *Ray, counter *RayCounter) {
	if t.NodesUsed == 0 {
		return
	}
	stack := make([]uint32, 0, traversalCap)
	nodeIdx := uint32(0)
	for {
		node := &t.Nodes[nodeIdx]
		counter.Traversals++
		if node.IsLeaf {
			counter.BoxTests++
			t.Instances[node.LeftFirst].Intersect(ray, counter, node.LeftFirst)
			if len(stack) == 0 {
				return
			}
			nodeIdx = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		child1 := node.LeftFirst
		child2 := node.LeftFirst + 1
		counter.BoxTests += 2
		dist1 := intersectAABB(ray, t.Nodes[child1].Min, t.Nodes[child1].Max)
		dist2 := intersectAABB(ray, t.Nodes[child2].Min, t.Nodes[child2].Max)
		if dist1 > dist2 {
			dist1, dist2 = dist2, dist1
			child1, child2 = child2, child1
		}
		if math.IsInf(dist1, 1) {
			if len(stack) == 0 {
				return
			}
			nodeIdx = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			nodeIdx = child1
			if !math.IsInf(dist2, 1) {
				stack = append(stack, child2)
			}
		}
	}
}
