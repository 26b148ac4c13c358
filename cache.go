package depot

import (
	"fmt"
	"maps"
	"slices"

	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Cache[any] = &SimpleCache[any]{}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	item := &c.items[index]
	return item
}

// Lookup resolves a key straight to its item
func (c *SimpleCache[T]) Lookup(key string) (T, bool) {
	index, ok := c.itemIndices[key]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[index], true
}

// Register stores item under key. Keys are unique; a maxCapacity of zero
// means unbounded.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, exists := c.itemIndices[key]; exists {
		return -1, DuplicateNameError{Kind: "cache entry", Name: key}
	}
	if c.maxCapacity > 0 && len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}

	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)

	return idx, nil
}

// Keys returns the registered keys in sorted order
func (c *SimpleCache[T]) Keys() []string {
	keys := iter_util.Collect(maps.Keys(c.itemIndices))
	slices.Sort(keys)
	return keys
}

func (c *SimpleCache[T]) Len() int {
	return len(c.items)
}

func (c *SimpleCache[T]) Clear() {
	c.items = c.items[:0]
	c.itemIndices = make(map[string]int)
}
