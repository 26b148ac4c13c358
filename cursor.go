package depot

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, space *Space) *Cursor {
	return &Cursor{
		query: query,
		space: space,
	}
}

// Next advances to the next active object of a matching pool
func (c *Cursor) Next() bool {
	if c.objectIndex < c.remaining {
		c.objectIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.poolIndex < len(c.matchedPools) {
		c.currentPool = c.matchedPools[c.poolIndex]
		c.remaining = c.currentPool.ActiveCount()

		if c.objectIndex < c.remaining {
			c.objectIndex++
			return true
		}
		c.poolIndex++
		c.objectIndex = 0
	}
	c.Reset()
	return false
}

// Objects yields every (index, pool) pair of active objects in matching pools
func (c *Cursor) Objects() iter.Seq2[int, *Pool] {
	return func(yield func(int, *Pool) bool) {
		c.initialize()

		for c.poolIndex < len(c.matchedPools) {
			c.currentPool = c.matchedPools[c.poolIndex]
			c.remaining = c.currentPool.ActiveCount()

			for c.objectIndex < c.remaining {
				if !yield(c.objectIndex, c.currentPool) {
					c.Reset()
					return
				}
				c.objectIndex++
			}
			c.objectIndex = 0
			c.poolIndex++
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matchedPools = make([]*Pool, 0)

	for _, pool := range c.space.Pools() {
		if c.query.Evaluate(pool, c.space) {
			c.matchedPools = append(c.matchedPools, pool)
		}
	}
	if len(c.matchedPools) > 0 {
		c.poolIndex = 0
		c.currentPool = c.matchedPools[0]
		c.remaining = c.currentPool.ActiveCount()
	}
	c.initialized = true
}

func (c *Cursor) Reset() {
	c.poolIndex = 0
	c.objectIndex = 0
	c.remaining = 0
	c.currentPool = nil
	c.matchedPools = nil
	c.initialized = false
}

// CurrentObject returns the pool and index the cursor points at after Next
func (c *Cursor) CurrentObject() (*Pool, int) {
	return c.currentPool, c.objectIndex - 1
}

func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
	}
	total := 0
	for _, pool := range c.matchedPools {
		total += pool.ActiveCount()
	}
	return total
}
