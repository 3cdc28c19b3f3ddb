package main

import "math"

const (
	defaultBins  = 8
	minBins      = 4
	maxBins      = 32
	traversalCap = 64
)

// BLASNode is a binary BVH node over a single mesh's triangles. Like the
// original tutorial, a single LeftFirst field is reused for two meanings
// depending on TriCount: zero means interior (LeftFirst is the left child,
// LeftFirst+1 the right), nonzero means leaf (LeftFirst is the first index
// into TriIdx, TriCount how many follow).
type BLASNode struct {
	Min, Max  Vec3
	LeftFirst uint32
	TriCount  uint32
}

func (n *BLASNode) IsLeaf() bool { return n.TriCount > 0 }

func (n *BLASNode) cost() float64 {
	return float64(n.TriCount) * (AABB{Min: n.Min, Max: n.Max}).Area()
}

// BLAS is a bottom-level acceleration structure over one mesh's triangles,
// built with binned SAH and traversed iteratively. Nodes are allocated from
// a pool sized 2n; index 1 is never used (the original tutorial leaves it
// idle to keep child-pair indices even), which is kept here for fidelity
// even though Go doesn't need the alignment trick the pool size originally
// bought in C++.
type BLAS struct {
	Tri       []Tri
	TriEx     []TriEx // parallel to Tri; NewBLAS leaves it nil (shading reads MeshData.TriEx)
	TriIdx    []uint32
	Nodes     []BLASNode
	NodesUsed uint32
	Bins      int
}

// NewBLAS creates a BLAS over tris with the given bin count (clamped to
// [4,32], defaulting to 8). Build must be called before Intersect.
func NewBLAS(tris []Tri, bins int) *BLAS {
	if bins <= 0 {
		bins = defaultBins
	}
	if bins < minBins {
		bins = minBins
	}
	if bins > maxBins {
		bins = maxBins
	}
	return &BLAS{Tri: tris, Bins: bins}
}

func (b *BLAS) Build() {
	n := len(b.Tri)
	if n == 0 {
		b.Nodes = nil
		b.NodesUsed = 0
		return
	}
	b.TriIdx = make([]uint32, n)
	for i := range b.TriIdx {
		b.TriIdx[i] = uint32(i)
	}
	b.Nodes = make([]BLASNode, 2*n)
	b.Nodes[0].LeftFirst = 0
	b.Nodes[0].TriCount = uint32(n)
	b.updateNodeBounds(0)
	b.NodesUsed = 2 // index 1 intentionally left unused

	// Explicit work queue rather than recursion: build depth is unbounded
	// by the caller's mesh, and the spec calls for an iterative builder to
	// match the iterative traversal below.
	queue := []uint32{0}
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if left, right, split := b.subdivide(idx); split {
			queue = append(queue, left, right)
		}
	}
}

func (b *BLAS) updateNodeBounds(idx uint32) {
	node := &b.Nodes[idx]
	box := EmptyAABB()
	first := int(node.LeftFirst)
	for i := 0; i < int(node.TriCount); i++ {
		tri := &b.Tri[b.TriIdx[first+i]]
		box.Grow(tri.V0)
		box.Grow(tri.V1)
		box.Grow(tri.V2)
	}
	node.Min, node.Max = box.Min, box.Max
}

// subdivide attempts to split node idx along its best SAH plane. It returns
// the two new child node indices and whether a split actually happened; a
// split is abandoned (false) if the binned search finds nothing cheaper
// than not splitting, or if the in-place partition leaves one side empty.
func (b *BLAS) subdivide(idx uint32) (uint32, uint32, bool) {
	node := &b.Nodes[idx]
	axis, splitPos, splitCost := b.findBestSplitPlane(node)
	if splitCost >= node.cost() {
		return 0, 0, false
	}

	i := int(node.LeftFirst)
	j := i + int(node.TriCount) - 1
	for i <= j {
		if b.Tri[b.TriIdx[i]].Centroid.Component(axis) < splitPos {
			i++
		} else {
			b.TriIdx[i], b.TriIdx[j] = b.TriIdx[j], b.TriIdx[i]
			j--
		}
	}
	leftCount := i - int(node.LeftFirst)
	if leftCount == 0 || leftCount == int(node.TriCount) {
		return 0, 0, false
	}

	leftIdx := b.NodesUsed
	rightIdx := b.NodesUsed + 1
	b.NodesUsed += 2

	b.Nodes[leftIdx].LeftFirst = node.LeftFirst
	b.Nodes[leftIdx].TriCount = uint32(leftCount)
	b.Nodes[rightIdx].LeftFirst = uint32(i)
	b.Nodes[rightIdx].TriCount = node.TriCount - uint32(leftCount)

	node.LeftFirst = leftIdx
	node.TriCount = 0

	b.updateNodeBounds(leftIdx)
	b.updateNodeBounds(rightIdx)
	return leftIdx, rightIdx, true
}

type sahBin struct {
	bounds   AABB
	triCount int
}

// findBestSplitPlane evaluates all 3 axes with b.Bins binned buckets each,
// returning the axis/position/cost of the cheapest plane found. Ties use a
// strict less-than so the first plane encountered wins, matching the
// original tutorial's comparison exactly.
func (b *BLAS) findBestSplitPlane(node *BLASNode) (int, float64, float64) {
	bestCost := math.Inf(1)
	bestAxis := 0
	bestPos := 0.0
	first := int(node.LeftFirst)
	count := int(node.TriCount)

	for axis := 0; axis < 3; axis++ {
		boundsMin, boundsMax := math.Inf(1), math.Inf(-1)
		for i := 0; i < count; i++ {
			c := b.Tri[b.TriIdx[first+i]].Centroid.Component(axis)
			boundsMin = math.Min(boundsMin, c)
			boundsMax = math.Max(boundsMax, c)
		}
		if boundsMin == boundsMax {
			continue
		}

		bins := make([]sahBin, b.Bins)
		for i := range bins {
			bins[i].bounds = EmptyAABB()
		}
		scale := float64(b.Bins) / (boundsMax - boundsMin)
		for i := 0; i < count; i++ {
			tri := &b.Tri[b.TriIdx[first+i]]
			binIdx := int((tri.Centroid.Component(axis) - boundsMin) * scale)
			if binIdx >= b.Bins {
				binIdx = b.Bins - 1
			}
			bins[binIdx].triCount++
			bins[binIdx].bounds.Grow(tri.V0)
			bins[binIdx].bounds.Grow(tri.V1)
			bins[binIdx].bounds.Grow(tri.V2)
		}

		leftArea := make([]float64, b.Bins-1)
		rightArea := make([]float64, b.Bins-1)
		leftCount := make([]int, b.Bins-1)
		rightCount := make([]int, b.Bins-1)
		leftBox, rightBox := EmptyAABB(), EmptyAABB()
		leftSum, rightSum := 0, 0
		for i := 0; i < b.Bins-1; i++ {
			leftSum += bins[i].triCount
			leftCount[i] = leftSum
			leftBox.GrowBox(bins[i].bounds)
			leftArea[i] = leftBox.Area()

			rightSum += bins[b.Bins-1-i].triCount
			rightCount[b.Bins-2-i] = rightSum
			rightBox.GrowBox(bins[b.Bins-1-i].bounds)
			rightArea[b.Bins-2-i] = rightBox.Area()
		}

		scaleBack := (boundsMax - boundsMin) / float64(b.Bins)
		for i := 0; i < b.Bins-1; i++ {
			planeCost := float64(leftCount[i])*leftArea[i] + float64(rightCount[i])*rightArea[i]
			if planeCost < bestCost {
				bestCost = planeCost
				bestAxis = axis
				bestPos = boundsMin + scaleBack*float64(i+1)
			}
		}
	}
	return bestAxis, bestPos, bestCost
}

// Refit recomputes every node's bounds bottom-up without re-splitting,
// for when triangle positions changed but topology (the partition into
// leaves) didn't. Index 1 is skipped — it was never used by Build.
func (b *BLAS) Refit() {
	for i := int(b.NodesUsed) - 1; i >= 0; i-- {
		if i == 1 {
			continue
		}
		node := &b.Nodes[i]
		if node.IsLeaf() {
			b.updateNodeBounds(uint32(i))
			continue
		}
		left := &b.Nodes[node.LeftFirst]
		right := &b.Nodes[node.LeftFirst+1]
		node.Min = Min3(left.Min, right.Min)
		node.Max = Max3(left.Max, right.Max)
	}
}

// Intersect traverses the BLAS for the closest hit, updating ray.Hit in
// place. instanceIndex is folded into the packed InstPrim so a hit can be
// traced back to both the owning BLASInstance and the triangle within it.
// The explicit stack starts with room for 64 entries and grows past that
// if a deeper tree needs it.
func (b *BLAS) Intersect(ray *Ray, counter *RayCounter, instanceIndex uint32) {
	if b.NodesUsed == 0 {
		return
	}
	stack := make([]uint32, 0, traversalCap)
	nodeIdx := uint32(0)
	for {
		node := &b.Nodes[nodeIdx]
		counter.Traversals++
		if node.IsLeaf() {
			for i := uint32(0); i < node.TriCount; i++ {
				triIdx := b.TriIdx[node.LeftFirst+i]
				counter.TriangleTests++
				intersectTri(ray, &b.Tri[triIdx], packInstPrim(instanceIndex, triIdx))
			}
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
		dist1 := intersectAABB(ray, b.Nodes[child1].Min, b.Nodes[child1].Max)
		dist2 := intersectAABB(ray, b.Nodes[child2].Min, b.Nodes[child2].Max)
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
