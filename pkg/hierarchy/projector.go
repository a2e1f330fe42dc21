package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultExcludedTags are the structures left out of the region browser
var DefaultExcludedTags = []string{"VS", "fiber tracts"}

// ErrNoRoot is returned when the projection ends without a root node
var ErrNoRoot = errors.New("hierarchy: projection has no root")

// NameLookup resolves a structure tag to its display name
type NameLookup func(tag string) (string, error)

// MissingParentPolicy decides what happens to a node whose parent is not part of the projection
type MissingParentPolicy int

const (
	// DropMissingParent silently drops the node, and with it its subtree
	DropMissingParent MissingParentPolicy = iota

	// ReparentMissingParent attaches the node to its nearest projected ancestor
	ReparentMissingParent

	// FailMissingParent aborts when a parent was never visited. Nodes below
	// an excluded structure are still dropped.
	FailMissingParent
)

var policyNames = map[MissingParentPolicy]string{
	DropMissingParent:     "drop",
	ReparentMissingParent: "reparent",
	FailMissingParent:     "fail",
}

func (p MissingParentPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("MissingParentPolicy(%d)", int(p))
}

// ParseMissingParentPolicy parses "drop", "reparent" or "fail"
func ParseMissingParentPolicy(s string) (MissingParentPolicy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return DropMissingParent, fmt.Errorf("invalid missing parent policy %q (must be drop, reparent or fail)", s)
}

// MissingParentError is returned under FailMissingParent when a node is
// visited before its parent
type MissingParentError struct {
	Identifier int
	Parent     int
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("hierarchy: node %d visited before its parent %d", e.Identifier, e.Parent)
}

// Options control a projection
type Options struct {
	// ExcludedTags are skipped along with their subtrees. Nil means DefaultExcludedTags.
	ExcludedTags []string

	// MissingParent selects how nodes with an unprojected parent are handled
	MissingParent MissingParentPolicy
}

// DefaultOptions returns the options the region browser uses
func DefaultOptions() Options {
	return Options{
		ExcludedTags:  append([]string(nil), DefaultExcludedTags...),
		MissingParent: DropMissingParent,
	}
}

func (o Options) excluded() map[string]bool {
	tags := o.ExcludedTags
	if tags == nil {
		tags = DefaultExcludedTags
	}
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}

// Project walks src once in pre-order and builds the display tree.
//
// Excluded tags are skipped and are not available as parents, so their
// subtrees drop out too under every policy. Only the first parentless node
// becomes the root; later ones are pruned like excluded nodes. The missing
// parent policy applies to nodes whose parent has not been visited yet.
//
// A failing name lookup aborts the projection: it means the hierarchy and
// the structures table disagree.
func Project(src Source, lookup NameLookup, opts Options) (*DisplayNode, error) {
	excluded := opts.excluded()

	var root *DisplayNode
	projected := make(map[int]*DisplayNode)
	// pruned holds nodes left out of the tree; their descendants are left out too
	pruned := make(map[int]bool)

	for _, id := range src.ExpandTree() {
		node, ok := src.Node(id)
		if !ok {
			continue
		}
		if excluded[node.Tag] {
			pruned[id] = true
			continue
		}

		name, err := lookup(node.Tag)
		if err != nil {
			return nil, fmt.Errorf("hierarchy: resolving name of %q: %w", node.Tag, err)
		}

		item := newDisplayNode(name, node.Tag, src.Depth(id))

		parentID, hasParent := src.Parent(id)
		if !hasParent {
			if root == nil {
				root = item
				projected[id] = item
			} else {
				pruned[id] = true
			}
			continue
		}

		if parent, ok := projected[parentID]; ok {
			if opts.MissingParent == ReparentMissingParent {
				item.Depth = parent.Depth + 1
			}
			parent.appendChild(item)
			projected[id] = item
			continue
		}
		if pruned[parentID] {
			pruned[id] = true
			continue
		}

		switch opts.MissingParent {
		case ReparentMissingParent:
			ancestor := nearestProjected(src, parentID, projected, pruned)
			if ancestor == nil {
				pruned[id] = true
				continue
			}
			item.Depth = ancestor.Depth + 1
			ancestor.appendChild(item)
			projected[id] = item
		case FailMissingParent:
			return nil, &MissingParentError{Identifier: id, Parent: parentID}
		default:
			pruned[id] = true
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// nearestProjected walks up from id and returns the first ancestor (id included)
// that was projected. It returns nil when a pruned ancestor comes first.
func nearestProjected(src Source, id int, projected map[int]*DisplayNode, pruned map[int]bool) *DisplayNode {
	seen := make(map[int]bool)
	for !seen[id] {
		seen[id] = true
		if item, ok := projected[id]; ok {
			return item
		}
		if pruned[id] {
			return nil
		}
		parent, ok := src.Parent(id)
		if !ok {
			return nil
		}
		id = parent
	}
	return nil
}
