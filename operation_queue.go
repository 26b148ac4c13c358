package depot

import (
	"fmt"
	"slices"

	"github.com/TheBitDrifter/bark"
)

type opQueue struct {
	destroyOps     []ObjectID
	pendingDestroy map[ObjectID]struct{}
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[ObjectID]struct{}),
	}
}

// EnqueueDestroy records a deferred destruction. Requests for an object that
// is already queued are dropped.
func (q *opQueue) EnqueueDestroy(id ObjectID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}
	q.destroyOps = append(q.destroyOps, id)
}

func (q *opQueue) Len() int {
	return len(q.destroyOps)
}

// processOperationQueue applies queued destructions highest index first.
// Swap-remove only ever pulls from the tail, so every index still pending
// stays valid while the higher ones are removed.
func (p *Pool) processOperationQueue() error {
	if len(p.opQueue.destroyOps) == 0 {
		return nil
	}

	indices := make([]int, 0, len(p.opQueue.destroyOps))
	for _, id := range p.opQueue.destroyOps {
		// Objects may already be gone through a direct destroy
		if i, ok := p.indexOf[id]; ok {
			indices = append(indices, i)
		}
	}
	slices.Sort(indices)

	p.opQueue.destroyOps = p.opQueue.destroyOps[:0]
	clear(p.opQueue.pendingDestroy)

	for k := len(indices) - 1; k >= 0; k-- {
		if _, _, err := p.destroy(indices[k]); err != nil {
			return bark.AddTrace(fmt.Errorf("failed to process queued destroy in pool %q: %w", p.name, err))
		}
	}
	return nil
}
