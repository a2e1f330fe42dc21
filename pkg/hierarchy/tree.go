// Package hierarchy holds the brain structure hierarchy and projects it into
// a tree of display nodes for the region browser.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"bgviewer/internal/models"
)

// ErrEmptyHierarchy is returned when a tree is built from an empty structures table
var ErrEmptyHierarchy = errors.New("hierarchy: no structures")

// Source is the hierarchy a projection reads from
type Source interface {
	// ExpandTree returns node identifiers in depth first pre-order, root first
	ExpandTree() []int

	// Node returns the node stored under id
	Node(id int) (models.HierarchyNode, bool)

	// Depth returns the distance of id from the root
	Depth(id int) int

	// Parent returns the parent identifier of id, or false for the root
	Parent(id int) (int, bool)
}

// Tree is the structure hierarchy of an atlas. Edges point from a structure
// to the structures it contains.
type Tree struct {
	graph  *simple.DirectedGraph
	nodes  map[int]models.HierarchyNode
	depths map[int]int
	root   int
}

var _ Source = (*Tree)(nil)

// NewTree builds the hierarchy from a structures table. The parent of each
// structure is the penultimate entry of its structure id path.
func NewTree(records []models.StructureRecord) (*Tree, error) {
	if len(records) == 0 {
		return nil, ErrEmptyHierarchy
	}

	t := &Tree{
		graph:  simple.NewDirectedGraph(),
		nodes:  make(map[int]models.HierarchyNode, len(records)),
		depths: make(map[int]int, len(records)),
	}

	// Register every structure first so parents can be checked regardless of table order
	for _, record := range records {
		if _, exists := t.nodes[record.ID]; exists {
			return nil, fmt.Errorf("hierarchy: duplicate structure id %d", record.ID)
		}
		t.nodes[record.ID] = models.HierarchyNode{Identifier: record.ID, Tag: record.Acronym}
		t.graph.AddNode(simple.Node(record.ID))
	}

	var roots []int
	for _, record := range records {
		parent, ok := record.ParentID()
		if !ok {
			roots = append(roots, record.ID)
			continue
		}
		if parent == record.ID {
			return nil, fmt.Errorf("hierarchy: structure %d is its own parent", record.ID)
		}
		if _, exists := t.nodes[parent]; !exists {
			return nil, fmt.Errorf("hierarchy: structure %d has unknown parent %d", record.ID, parent)
		}

		node := t.nodes[record.ID]
		p := parent
		node.ParentIdentifier = &p
		t.nodes[record.ID] = node

		t.graph.SetEdge(t.graph.NewEdge(simple.Node(parent), simple.Node(record.ID)))
	}

	switch len(roots) {
	case 0:
		return nil, errors.New("hierarchy: no root structure")
	case 1:
		t.root = roots[0]
	default:
		return nil, fmt.Errorf("hierarchy: %d root structures %v", len(roots), roots)
	}

	// Topological order puts every parent before its children, so depths can be filled in one pass
	order, err := topo.Sort(t.graph)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: structure paths form a cycle: %w", err)
	}
	for _, n := range order {
		id := int(n.ID())
		if parent, ok := t.Parent(id); ok {
			t.depths[id] = t.depths[parent] + 1
		} else {
			t.depths[id] = 0
		}
	}

	return t, nil
}

// Root returns the identifier of the root structure
func (t *Tree) Root() int {
	return t.root
}

// Len returns the number of structures in the tree
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node stored under id
func (t *Tree) Node(id int) (models.HierarchyNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Depth returns the distance of id from the root, or -1 when id is not in the tree
func (t *Tree) Depth(id int) int {
	d, ok := t.depths[id]
	if !ok {
		return -1
	}
	return d
}

// Parent returns the parent of id
func (t *Tree) Parent(id int) (int, bool) {
	n, ok := t.nodes[id]
	if !ok || n.ParentIdentifier == nil {
		return 0, false
	}
	return *n.ParentIdentifier, true
}

// Children returns the children of id ordered by tag, then by identifier
func (t *Tree) Children(id int) []int {
	if t.graph.Node(int64(id)) == nil {
		return nil
	}

	nodes := graph.NodesOf(t.graph.From(int64(id)))
	children := make([]int, len(nodes))
	for i, n := range nodes {
		children[i] = int(n.ID())
	}

	sort.Slice(children, func(i, j int) bool {
		ti, tj := t.nodes[children[i]].Tag, t.nodes[children[j]].Tag
		if ti != tj {
			return ti < tj
		}
		return children[i] < children[j]
	})
	return children
}

// ExpandTree returns every identifier in depth first pre-order starting at the root
func (t *Tree) ExpandTree() []int {
	order := make([]int, 0, len(t.nodes))

	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)

		// Push in reverse so the first child is visited next
		children := t.Children(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return order
}

// Ancestors returns the identifiers from id's parent up to the root
func (t *Tree) Ancestors(id int) []int {
	var ancestors []int
	for {
		parent, ok := t.Parent(id)
		if !ok {
			return ancestors
		}
		ancestors = append(ancestors, parent)
		id = parent
	}
}
