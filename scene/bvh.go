package scene

import reMath "crystals/math"

// BVHConfig tags which children of an interior BVH node are populated.
type BVHConfig int

const (
	BVHLeaf BVHConfig = iota
	BVHLeft
	BVHRight
	BVHBoth
)

// bvhLimit is the extent floor below which splitting stops and the
// remaining primitives are chained as leaves instead.
const bvhLimit = 0.0001

// BVHNode is one entry in the BVH's flat node array. In a Leaf node,
// Left stores a primitive index; in an interior node, Left/Right store
// indices of child nodes in the same array.
type BVHNode struct {
	Box    AABB
	Config BVHConfig
	Left   int
	Right  int
}

// BVH is a spatial-median bounding volume hierarchy over a fixed
// primitive set. Nodes live in one contiguous slice; the root is index 0.
type BVH struct {
	Nodes      []BVHNode
	Primitives []Primitive
}

// BuildBVH constructs a BVH over primitives by recursive spatial median
// split on the widest axis of each node's box.
func BuildBVH(primitives []Primitive) *BVH {
	b := &BVH{Primitives: primitives}

	if len(primitives) == 0 {
		b.Nodes = []BVHNode{{Config: BVHLeaf, Left: -1, Right: -1}}
		return b
	}

	aabbs := make([]AABB, len(primitives))
	indices := make([]int, len(primitives))
	for i := range primitives {
		aabbs[i] = primitives[i].AABB()
		indices[i] = i
	}

	b.build(indices, aabbs)

	// build appends every child before its parent, so the root comes
	// last. Reverse the slice to put the root at index 0 and remap the
	// child indices of interior nodes to match.
	last := len(b.Nodes) - 1
	for i, j := 0, last; i < j; i, j = i+1, j-1 {
		b.Nodes[i], b.Nodes[j] = b.Nodes[j], b.Nodes[i]
	}
	for i := range b.Nodes {
		if b.Nodes[i].Config != BVHLeaf {
			b.Nodes[i].Left = last - b.Nodes[i].Left
			b.Nodes[i].Right = last - b.Nodes[i].Right
		}
	}
	return b
}

func (b *BVH) boxOf(indices []int, aabbs []AABB) AABB {
	box := aabbs[indices[0]]
	for _, idx := range indices[1:] {
		box = box.Union(aabbs[idx])
	}
	return box
}

// build recursively partitions indices and appends the resulting subtree
// to b.Nodes, returning the index of its root node.
func (b *BVH) build(indices []int, aabbs []AABB) int {
	box := b.boxOf(indices, aabbs)

	if len(indices) == 1 {
		b.Nodes = append(b.Nodes, BVHNode{Box: box, Config: BVHLeaf, Left: indices[0], Right: -1})
		return len(b.Nodes) - 1
	}

	axis, extent := box.WidestAxis()
	if extent < bvhLimit {
		return b.buildLeafChain(indices, aabbs)
	}

	mid := box.AxisValue(axis, box.Min) + extent/2
	var left, right []int
	for _, idx := range indices {
		if box.AxisValue(axis, aabbs[idx].Centroid) < mid {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	// No progress: every primitive landed on the same side even though
	// the box isn't degenerate. Fall back to a leaf chain to guarantee
	// the recursion terminates.
	if len(left) == 0 || len(right) == 0 || len(left) == len(indices) || len(right) == len(indices) {
		return b.buildLeafChain(indices, aabbs)
	}

	leftIdx := b.build(left, aabbs)
	rightIdx := b.build(right, aabbs)

	tight := b.Nodes[leftIdx].Box.Union(b.Nodes[rightIdx].Box)
	b.Nodes = append(b.Nodes, BVHNode{Box: tight, Config: BVHBoth, Left: leftIdx, Right: rightIdx})
	return len(b.Nodes) - 1
}

// buildLeafChain attaches indices as a right-leaning chain of leaves:
// each node holds one primitive as its left leaf and the remainder of
// the chain as its right child.
func (b *BVH) buildLeafChain(indices []int, aabbs []AABB) int {
	if len(indices) == 1 {
		box := aabbs[indices[0]]
		b.Nodes = append(b.Nodes, BVHNode{Box: box, Config: BVHLeaf, Left: indices[0], Right: -1})
		return len(b.Nodes) - 1
	}

	leafBox := aabbs[indices[0]]
	leafIdx := len(b.Nodes)
	b.Nodes = append(b.Nodes, BVHNode{Box: leafBox, Config: BVHLeaf, Left: indices[0], Right: -1})

	restIdx := b.buildLeafChain(indices[1:], aabbs)

	tight := leafBox.Union(b.Nodes[restIdx].Box)
	b.Nodes = append(b.Nodes, BVHNode{Box: tight, Config: BVHBoth, Left: leafIdx, Right: restIdx})
	return len(b.Nodes) - 1
}

// Intersect traverses the BVH and returns the nearest positive-t Hit, or
// NoHit if the ray misses every primitive.
func (b *BVH) Intersect(origin, dir reMath.Vec3) Hit {
	if len(b.Nodes) == 0 {
		return NoHit
	}
	root := b.Nodes[0]
	if root.Config == BVHLeaf && root.Left < 0 {
		return NoHit
	}
	if !root.Box.Intersect(origin, dir, 1e-4, 1e30) {
		return NoHit
	}
	return b.traverse(0, origin, dir)
}

func (b *BVH) traverse(nodeIdx int, origin, dir reMath.Vec3) Hit {
	node := b.Nodes[nodeIdx]

	if node.Config == BVHLeaf {
		return b.Primitives[node.Left].Intersect(origin, dir)
	}

	best := NoHit

	tryChild := func(childIdx int) {
		child := b.Nodes[childIdx]
		if !child.Box.Intersect(origin, dir, 1e-4, 1e30) {
			return
		}
		hit := b.traverse(childIdx, origin, dir)
		if hit.T >= 0 && (best.T < 0 || hit.T < best.T) {
			best = hit
		}
	}

	if node.Config == BVHLeft || node.Config == BVHBoth {
		tryChild(node.Left)
	}
	if node.Config == BVHRight || node.Config == BVHBoth {
		tryChild(node.Right)
	}

	return best
}
