package depot

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []string
}

type leafNode struct {
	components []string
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, components []string) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

func newLeafNode(components []string) *leafNode {
	return &leafNode{components: components}
}

// And is the common pool type: a pool qualifies when it carries every component
func And(components ...string) QueryNode {
	return newLeafNode(components)
}

// maskFor builds the mask for names. missing reports names the space has
// never registered, which no pool can carry.
func maskFor(space *Space, names []string) (m mask.Mask, missing bool) {
	for _, name := range names {
		bit, ok := space.componentBits[name]
		if !ok {
			missing = true
			continue
		}
		m.Mark(bit)
	}
	return m, missing
}

func (n *compositeNode) Evaluate(pool *Pool, space *Space) bool {
	// Build mask at evaluation time
	nodeMask, missing := maskFor(space, n.components)
	poolMask := pool.Mask()

	switch n.op {
	case OpAnd:
		if missing || !poolMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(pool, space) {
				return false
			}
		}
		return true

	case OpOr:
		if poolMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(pool, space) {
				return true
			}
		}
		return false

	case OpNot:
		if len(n.children) == 0 {
			return poolMask.ContainsNone(nodeMask)
		}
		for _, child := range n.children {
			if child.Evaluate(pool, space) {
				return false
			}
		}
		return !poolMask.ContainsAny(nodeMask)
	}
	return false
}

func (n *leafNode) Evaluate(pool *Pool, space *Space) bool {
	nodeMask, missing := maskFor(space, n.components)
	if missing {
		return false
	}
	poolMask := pool.Mask()
	return poolMask.ContainsAll(nodeMask)
}

func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...interface{}) ([]string, []QueryNode) {
	components := make([]string, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case string:
			components = append(components, v)
		case []string:
			components = append(components, v...)
		case ComponentType:
			components = append(components, v.Name())
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *query) Evaluate(pool *Pool, space *Space) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(pool, space)
}
