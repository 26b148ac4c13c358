package depot

var _ PoolObserver = &BehaviorRunner{}

// BehaviorRunner holds the per-object execution state of one pool's tree.
// Every array is sized to the pool's capacity and follows the pool's object
// indices through creation and swap-removal.
type BehaviorRunner struct {
	space *Space
	pool  *Pool
	tree  *BehaviorTree

	// current is the node each object resumes at
	current []int32
	// state holds one counter array per stateful node
	state [][]int
	last  []Status
}

// NewBehaviorRunner attaches a runner for tree to pool
func NewBehaviorRunner(space *Space, pool *Pool, tree *BehaviorTree) *BehaviorRunner {
	capacity := pool.Capacity()
	r := &BehaviorRunner{
		space:   space,
		pool:    pool,
		tree:    tree,
		current: make([]int32, capacity),
		state:   make([][]int, tree.stateNodes),
		last:    make([]Status, capacity),
	}
	for i := range r.state {
		r.state[i] = make([]int, capacity)
	}
	for i := range r.last {
		r.last[i] = StatusRunning
	}
	pool.Observe(r)
	return r
}

func (r *BehaviorRunner) Tree() *BehaviorTree {
	return r.tree
}

// Current returns the node index object i resumes at
func (r *BehaviorRunner) Current(i int) int {
	return int(r.current[i])
}

// LastStatus returns how object i's most recent tick ended
func (r *BehaviorRunner) LastStatus(i int) Status {
	return r.last[i]
}

func (r *BehaviorRunner) ObjectsCreated(created IndexRange) {
	for i := created.Start; i < created.End; i++ {
		r.reset(i)
	}
}

func (r *BehaviorRunner) ObjectDestroyed(removed, moved int) {
	if removed != moved {
		r.current[removed] = r.current[moved]
		r.last[removed] = r.last[moved]
		for _, counters := range r.state {
			counters[removed] = counters[moved]
		}
	}
	r.reset(moved)
}

func (r *BehaviorRunner) reset(i int) {
	r.current[i] = 0
	r.last[i] = StatusRunning
	for _, counters := range r.state {
		counters[i] = 0
	}
}

// Tick advances one object by one tick and returns how the tick ended:
// Running when the object suspended, or the root's result when the tree
// finished. A finished tree restarts at the root next tick.
func (r *BehaviorRunner) Tick(obj int) Status {
	unlock := r.hold()
	defer unlock()
	return r.step(obj)
}

// TickAll advances every object that was active when the call started.
// Objects created during the pass start on the next tick.
func (r *BehaviorRunner) TickAll() {
	unlock := r.hold()
	defer unlock()

	flags := BehaviorComponent.Slice(r.pool)
	n := r.pool.ActiveCount()
	for obj := 0; obj < n; obj++ {
		if flags != nil && flags[obj].Disabled {
			continue
		}
		r.step(obj)
	}
}

// hold locks the pool for the pass unless the caller already holds it, so
// destruction requested by nodes never shifts indices mid-pass
func (r *BehaviorRunner) hold() func() {
	if r.pool.Locked() {
		return func() {}
	}
	r.pool.Lock()
	return r.pool.Unlock
}

func (r *BehaviorRunner) step(obj int) Status {
	budget := Config.MaxBehaviorSteps()
	index := int(r.current[obj])
	res := r.enter(index, obj)
	steps := 1
	for {
		switch res.Status {
		case StatusRunning:
			r.current[obj] = int32(index)
			r.last[obj] = StatusRunning
			return StatusRunning

		case StatusTransfer:
			if steps >= budget {
				// Park before entering; the child begins next tick
				r.current[obj] = int32(res.Child)
				r.last[obj] = StatusRunning
				return StatusRunning
			}
			index = res.Child
			res = r.enter(index, obj)
			steps++

		default:
			node := &r.tree.nodes[index]
			if node.Parent < 0 {
				r.current[obj] = 0
				r.last[obj] = res.Status
				return res.Status
			}
			res = r.onChildFinish(&r.tree.nodes[node.Parent], res.Status, node.Slot, obj)
			index = node.Parent
		}
	}
}
