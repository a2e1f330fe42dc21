package hierarchy

// Tier is the text size class of a tree entry
type Tier string

const (
	TierLarge  Tier = "large"
	TierMedium Tier = "medium"
	TierSmall  Tier = "small"
)

// DisplayTier returns the tier for a node at the given depth
func DisplayTier(depth int) Tier {
	switch {
	case depth < 2:
		return TierLarge
	case depth < 5:
		return TierMedium
	default:
		return TierSmall
	}
}

// FontSize returns the point size used for the tier
func (t Tier) FontSize() int {
	switch t {
	case TierLarge:
		return 16
	case TierMedium:
		return 14
	default:
		return 12
	}
}

// DisplayNode is one entry of the region browser tree
type DisplayNode struct {
	// Label is the structure name shown in the tree
	Label string `json:"label"`

	// Tag is the structure acronym
	Tag string `json:"tag"`

	// Depth is the distance from the display root
	Depth int `json:"depth"`

	// Checked mirrors the entry's check box
	Checked bool `json:"checked"`

	// Active is set while the structure's mesh is shown; the entry is drawn bold
	Active bool `json:"active"`

	Children []*DisplayNode `json:"children,omitempty"`
}

func newDisplayNode(label, tag string, depth int) *DisplayNode {
	return &DisplayNode{
		Label: label,
		Tag:   tag,
		Depth: depth,
	}
}

func (n *DisplayNode) appendChild(child *DisplayNode) {
	n.Children = append(n.Children, child)
}

// ToggleActive flips the active state
func (n *DisplayNode) ToggleActive() {
	n.Active = !n.Active
}

// SetChecked sets the check box state
func (n *DisplayNode) SetChecked(checked bool) {
	n.Checked = checked
}

// Tier returns the display tier for the node's depth
func (n *DisplayNode) Tier() Tier {
	return DisplayTier(n.Depth)
}

// Walk calls fn for n and every descendant in pre-order. Returning false from
// fn skips that node's children.
func (n *DisplayNode) Walk(fn func(node *DisplayNode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node in pre-order carrying tag
func (n *DisplayNode) Find(tag string) *DisplayNode {
	var found *DisplayNode
	n.Walk(func(node *DisplayNode) bool {
		if found != nil {
			return false
		}
		if node.Tag == tag {
			found = node
			return false
		}
		return true
	})
	return found
}

// Len returns the number of nodes in the subtree rooted at n
func (n *DisplayNode) Len() int {
	count := 0
	n.Walk(func(*DisplayNode) bool {
		count++
		return true
	})
	return count
}
