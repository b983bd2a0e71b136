package scene_node

import "sync"

type node struct {
	mu       sync.RWMutex
	name     string
	parent   *node
	children []*node
	position [3]float32
	attached []string
}

// Node defines the interface for a minimal scene graph node. An animated entity owns one
// node and attaches its renderables to a child "insertion" node whose position carries the
// inverse of the extracted root motion.
type Node interface {
	// Name returns the node's name.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Parent returns the parent node, or nil for a root node.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns a snapshot of the node's children.
	//
	// Returns:
	//   - []Node: the child nodes
	Children() []Node

	// CreateChild creates and attaches a new child node.
	//
	// Parameters:
	//   - name: the child's name
	//
	// Returns:
	//   - Node: the new child
	CreateChild(name string) Node

	// RemoveChild detaches a child node. It is a no-op if child is not a child of this node.
	//
	// Parameters:
	//   - child: the node to remove
	RemoveChild(child Node)

	// Position returns the node's local position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the node's local position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p [3]float32)

	// Attach records a named renderable or particle system on the node.
	//
	// Parameters:
	//   - name: the attachment name
	Attach(name string)

	// Detach removes one attachment by name.
	//
	// Parameters:
	//   - name: the attachment name
	//
	// Returns:
	//   - bool: true if an attachment was removed
	Detach(name string) bool

	// Attached returns a snapshot of the node's attachments in attach order.
	//
	// Returns:
	//   - []string: the attachment names
	Attached() []string
}

var _ Node = &node{}

// NewNode creates a root scene node.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - Node: the new node
func NewNode(name string) Node {
	return &node{name: name}
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) CreateChild(name string) Node {
	child := &node{name: name, parent: n}
	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()
	return child
}

func (n *node) RemoveChild(child Node) {
	c, ok := child.(*node)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.mu.Lock()
			c.parent = nil
			c.mu.Unlock()
			return
		}
	}
}

func (n *node) Position() [3]float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) SetPosition(p [3]float32) {
	n.mu.Lock()
	n.position = p
	n.mu.Unlock()
}

func (n *node) Attach(name string) {
	n.mu.Lock()
	n.attached = append(n.attached, name)
	n.mu.Unlock()
}

func (n *node) Detach(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, a := range n.attached {
		if a == name {
			n.attached = append(n.attached[:i], n.attached[i+1:]...)
			return true
		}
	}
	return false
}

func (n *node) Attached() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.attached))
	copy(out, n.attached)
	return out
}
