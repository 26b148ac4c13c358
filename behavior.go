package depot

import (
	"fmt"
)

// NodeKind is the closed set of behavior node types
type NodeKind uint8

const (
	// Composites
	KindSequence NodeKind = iota
	KindSelector

	// Decorators, at most one child
	KindInvert
	KindAlwaysFail
	KindAlwaysSucceed
	KindLoop
	KindLoopOnSuccess
	KindLoopOnFailure
	KindRepeat

	// Leaves
	KindDebug
	KindRotateDirection
	KindWait
	KindDestroy
	KindSpawn
)

var kindNames = [...]string{
	KindSequence:        "Sequence",
	KindSelector:        "Selector",
	KindInvert:          "Invert",
	KindAlwaysFail:      "AlwaysFail",
	KindAlwaysSucceed:   "AlwaysSucceed",
	KindLoop:            "Loop",
	KindLoopOnSuccess:   "LoopOnSuccess",
	KindLoopOnFailure:   "LoopOnFailure",
	KindRepeat:          "Repeat",
	KindDebug:           "Debug",
	KindRotateDirection: "RotateDirection",
	KindWait:            "Wait",
	KindDestroy:         "Destroy",
	KindSpawn:           "Spawn",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

func (k NodeKind) IsLeaf() bool {
	return k >= KindDebug
}

func (k NodeKind) IsDecorator() bool {
	return k >= KindInvert && k <= KindRepeat
}

// stateful kinds keep a per-object counter
func (k NodeKind) stateful() bool {
	return k == KindRepeat || k == KindWait
}

type Status uint8

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
	StatusTransfer
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusRunning:
		return "Running"
	case StatusTransfer:
		return "Transfer"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Result is what a node evaluation yields. Child is the tree index to
// transfer into and is only meaningful for StatusTransfer.
type Result struct {
	Status Status
	Child  int
}

func (r Result) Terminal() bool {
	return r.Status == StatusSuccess || r.Status == StatusFailure
}

var (
	success = Result{Status: StatusSuccess}
	failure = Result{Status: StatusFailure}
	running = Result{Status: StatusRunning}
)

func transfer(child int) Result {
	return Result{Status: StatusTransfer, Child: child}
}

func resolve(ok bool) Result {
	if ok {
		return success
	}
	return failure
}

// NodeConfig is the static per-node configuration. Each kind reads only the
// fields it needs.
type NodeConfig struct {
	// Debug
	Message string
	// RotateDirection, in radians
	Angle float64
	// Wait
	Ticks int
	// Repeat
	Iterations int
}

// NodeSpec is the nested form a tree is authored in
type NodeSpec struct {
	Kind     NodeKind
	Config   NodeConfig
	Children []NodeSpec
}

func Sequence(children ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindSequence, Children: children}
}

func Selector(children ...NodeSpec) NodeSpec {
	return NodeSpec{Kind: KindSelector, Children: children}
}

func decorator(kind NodeKind, child []NodeSpec) NodeSpec {
	return NodeSpec{Kind: kind, Children: child}
}

// Invert takes an optional child. Passing more than one fails tree validation.
func Invert(child ...NodeSpec) NodeSpec        { return decorator(KindInvert, child) }
func AlwaysFail(child ...NodeSpec) NodeSpec    { return decorator(KindAlwaysFail, child) }
func AlwaysSucceed(child ...NodeSpec) NodeSpec { return decorator(KindAlwaysSucceed, child) }
func Loop(child ...NodeSpec) NodeSpec          { return decorator(KindLoop, child) }
func LoopOnSuccess(child ...NodeSpec) NodeSpec { return decorator(KindLoopOnSuccess, child) }
func LoopOnFailure(child ...NodeSpec) NodeSpec { return decorator(KindLoopOnFailure, child) }

func Repeat(iterations int, child ...NodeSpec) NodeSpec {
	spec := decorator(KindRepeat, child)
	spec.Config.Iterations = iterations
	return spec
}

func Debug(message string) NodeSpec {
	return NodeSpec{Kind: KindDebug, Config: NodeConfig{Message: message}}
}

func RotateDirection(angle float64) NodeSpec {
	return NodeSpec{Kind: KindRotateDirection, Config: NodeConfig{Angle: angle}}
}

func Wait(ticks int) NodeSpec {
	return NodeSpec{Kind: KindWait, Config: NodeConfig{Ticks: ticks}}
}

func Destroy() NodeSpec {
	return NodeSpec{Kind: KindDestroy}
}

func SpawnNode() NodeSpec {
	return NodeSpec{Kind: KindSpawn}
}

// BehaviorNode is one entry of the flat tree. Links are indices into the
// tree's node slice; the root is index 0 with Parent -1.
type BehaviorNode struct {
	Kind     NodeKind
	Children []int
	Parent   int
	// Slot is the node's position in its parent's Children
	Slot   int
	Config NodeConfig
	// state is the index of the node's per-object counter array, or -1
	state int
}

// BehaviorTree is an immutable flat tree shared by every object of a pool
type BehaviorTree struct {
	nodes      []BehaviorNode
	stateNodes int
}

// NewBehaviorTree flattens spec in pre-order and validates it
func NewBehaviorTree(spec NodeSpec) (*BehaviorTree, error) {
	tree := &BehaviorTree{}
	if err := tree.flatten(spec, -1, 0); err != nil {
		return nil, err
	}
	return tree, nil
}

func (t *BehaviorTree) flatten(spec NodeSpec, parent, slot int) error {
	index := len(t.nodes)
	if int(spec.Kind) >= len(kindNames) {
		return BehaviorTreeError{Node: index, Reason: fmt.Sprintf("unknown node kind %d", spec.Kind)}
	}
	switch {
	case spec.Kind.IsLeaf() && len(spec.Children) > 0:
		return BehaviorTreeError{Node: index, Reason: fmt.Sprintf("leaf %s cannot have children", spec.Kind)}
	case spec.Kind.IsDecorator() && len(spec.Children) > 1:
		return BehaviorTreeError{Node: index, Reason: fmt.Sprintf("decorator %s takes at most one child, got %d", spec.Kind, len(spec.Children))}
	}

	node := BehaviorNode{
		Kind:   spec.Kind,
		Parent: parent,
		Slot:   slot,
		Config: spec.Config,
		state:  -1,
	}
	if spec.Kind.stateful() {
		node.state = t.stateNodes
		t.stateNodes++
	}
	t.nodes = append(t.nodes, node)

	children := make([]int, 0, len(spec.Children))
	for i, child := range spec.Children {
		children = append(children, len(t.nodes))
		if err := t.flatten(child, index, i); err != nil {
			return err
		}
	}
	t.nodes[index].Children = children
	return nil
}

func (t *BehaviorTree) Len() int {
	return len(t.nodes)
}

// Node returns the definition at index
func (t *BehaviorTree) Node(index int) BehaviorNode {
	return t.nodes[index]
}
