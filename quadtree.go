package quadpress

import (
	"fmt"
	"iter"
)

// Quadrant indexes a node's children. The numeric order is the traversal order.
type Quadrant int

const (
	NorthWest Quadrant = iota
	NorthEast
	SouthEast
	SouthWest
)

func (q Quadrant) String() string {
	switch q {
	case NorthWest:
		return "north-west"
	case NorthEast:
		return "north-east"
	case SouthEast:
		return "south-east"
	case SouthWest:
		return "south-west"
	}
	return fmt.Sprintf("Quadrant(%d)", int(q))
}

// Node is a quadtree node. A leaf's Color is authoritative for its whole
// area; an internal node's Color is stale until a merge rewrites it.
// Each node exclusively owns its children.
type Node struct {
	Area
	children [4]*Node
}

// NewTree returns a single-leaf tree covering a.
func NewTree(a Area) *Node {
	return &Node{Area: a}
}

// IsDivided reports whether the node has children.
func (n *Node) IsDivided() bool {
	return n.children[NorthWest] != nil
}

// Child returns the child in quadrant q, or nil for a leaf.
func (n *Node) Child(q Quadrant) *Node {
	return n.children[q]
}

// Children returns the four children in traversal order. All entries are
// nil for a leaf.
func (n *Node) Children() [4]*Node {
	return n.children
}

// Subdivide turns a leaf into an internal node with four children covering
// its quadrants, each starting with the node's current color.
func (n *Node) Subdivide() error {
	switch {
	case n.IsDivided():
		return fmt.Errorf("subdivide %v: %w", n.Area, ErrAlreadyDivided)
	case n.IsPixel():
		return fmt.Errorf("subdivide %v: %w", n.Area, ErrUnitArea)
	case n.Dx() < 2 || n.Dy() < 2:
		return fmt.Errorf("subdivide %v: %w", n.Area, ErrThinArea)
	}
	for q, a := range n.quadrants() {
		n.children[q] = &Node{Area: a}
	}
	return nil
}

// ClearChildren drops the subtree, turning the node into a leaf.
func (n *Node) ClearChildren() {
	n.children = [4]*Node{}
}

func (n *Node) hasInternalChild() bool {
	for _, c := range n.children {
		if c != nil && c.IsDivided() {
			return true
		}
	}
	return false
}

// Collapse merges, bottom-up, every group of four leaf siblings that share
// exactly the same color. It never changes the rendered image.
func (n *Node) Collapse() {
	if !n.IsDivided() {
		return
	}
	for _, c := range n.children {
		c.Collapse()
	}
	if n.hasInternalChild() {
		return
	}
	first := n.children[NorthWest].Color
	for _, c := range n.children[1:] {
		if c.Color != first {
			return
		}
	}
	n.Color = first
	n.ClearChildren()
}

// UniteResult reports the outcome of Unite.
type UniteResult int

const (
	// UniteNoop means the node was already a leaf.
	UniteNoop UniteResult = iota
	// UniteMerged means the children were averaged into the node.
	UniteMerged
	// UniteRefused means a child was internal and recursion was not allowed.
	// The tree is unchanged.
	UniteRefused
)

func (r UniteResult) String() string {
	switch r {
	case UniteMerged:
		return "merged"
	case UniteRefused:
		return "refused"
	default:
		return "noop"
	}
}

// Unite forcibly merges the children into the node using the floor mean of
// the four child colors, regardless of how uniform they are. The mean is not
// weighted by child area. With allowRecursive, internal children are united
// first; without it, any internal child makes Unite refuse.
func (n *Node) Unite(allowRecursive bool) UniteResult {
	if !n.IsDivided() {
		return UniteNoop
	}
	if n.hasInternalChild() {
		if !allowRecursive {
			return UniteRefused
		}
		for _, c := range n.children {
			c.Unite(true)
		}
	}
	var cs [4]Color
	for q, c := range n.children {
		cs[q] = c.Color
	}
	n.Color = averageColor(cs)
	n.ClearChildren()
	return UniteMerged
}

// Depth is 1 for a leaf, otherwise one more than the deepest child.
func (n *Node) Depth() int {
	if !n.IsDivided() {
		return 1
	}
	d := 0
	for _, c := range n.children {
		d = max(d, c.Depth())
	}
	return 1 + d
}

// Walk visits the tree in pre-order: the node, then its north-west,
// north-east, south-east and south-west subtrees. Children are read after fn
// returns, so fn may subdivide or merge the node it is given and the walk
// follows the new shape. Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(func(cur *Node, _ int) bool { return fn(cur) })
}

// walk is Walk with the 1-based level of each node below n.
func (n *Node) walk(fn func(*Node, int) bool) {
	type entry struct {
		node  *Node
		level int
	}
	stack := []entry{{n, 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur.node, cur.level) {
			return
		}
		if !cur.node.IsDivided() {
			continue
		}
		for q := SouthWest; q >= NorthWest; q-- {
			stack = append(stack, entry{cur.node.children[q], cur.level + 1})
		}
	}
}

// All yields every node in Walk order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.Walk(yield)
	}
}

// Leaves yields the leaves in Walk order.
func (n *Node) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.Walk(func(cur *Node) bool {
			if cur.IsDivided() {
				return true
			}
			return yield(cur)
		})
	}
}

// Count returns the number of nodes and leaves in the tree.
func (n *Node) Count() (nodes, leaves int) {
	for cur := range n.All() {
		nodes++
		if !cur.IsDivided() {
			leaves++
		}
	}
	return nodes, leaves
}

// Clone returns a deep copy that shares nothing with n.
func (n *Node) Clone() *Node {
	c := &Node{Area: n.Area}
	if n.IsDivided() {
		for q, child := range n.children {
			c.children[q] = child.Clone()
		}
	}
	return c
}

// Insert paints a single pixel into the tree, subdividing leaves down to the
// pixel's cell when its color differs. It returns false when the pixel lies
// outside the node or cannot be isolated.
func (n *Node) Insert(p Pixel) bool {
	if !n.Contains(p.Point) {
		return false
	}
	if !n.IsDivided() && p.Color == n.Color {
		return true
	}
	if n.IsPixel() {
		n.Color = p.Color
		return true
	}
	if !n.IsDivided() {
		if err := n.Subdivide(); err != nil {
			return false
		}
	}
	for _, c := range n.children {
		if c.Insert(p) {
			return true
		}
	}
	return false
}
