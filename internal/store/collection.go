package store

import (
	"slices"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// Collection is an id-indexed set of entities that also remembers display
// order. Newest entities are usually prepended.
type Collection[T models.Entity] struct {
	order []string
	items map[string]T
}

// NewCollection creates an empty collection
func NewCollection[T models.Entity]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Len returns the number of entities
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// Get looks up an entity by id
func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// Has reports whether id is present
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Prepend inserts v at the front. An existing entity with the same id is
// replaced and moved.
func (c *Collection[T]) Prepend(v T) {
	id := v.GetID()
	if _, ok := c.items[id]; ok {
		c.order = slices.DeleteFunc(c.order, func(x string) bool { return x == id })
	}
	c.items[id] = v
	c.order = slices.Insert(c.order, 0, id)
}

// Append inserts v at the back. An existing entity with the same id is
// replaced and moved.
func (c *Collection[T]) Append(v T) {
	id := v.GetID()
	if _, ok := c.items[id]; ok {
		c.order = slices.DeleteFunc(c.order, func(x string) bool { return x == id })
	}
	c.items[id] = v
	c.order = append(c.order, id)
}

// Replace swaps the stored entity for v, keeping its position. It returns
// false if no entity with that id exists.
func (c *Collection[T]) Replace(v T) bool {
	id := v.GetID()
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = v
	return true
}

// Remove deletes the entity with id. It returns false if it was absent.
func (c *Collection[T]) Remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(x string) bool { return x == id })
	return true
}

// RemoveWhere deletes every entity matching pred and returns how many went.
func (c *Collection[T]) RemoveWhere(pred func(T) bool) int {
	removed := 0
	kept := c.order[:0:0]
	for _, id := range c.order {
		if pred(c.items[id]) {
			delete(c.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return removed
}

// All returns the entities in display order
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Filter returns the entities matching pred, in display order
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range c.order {
		if v := c.items[id]; pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the first entity matching pred
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, id := range c.order {
		if v := c.items[id]; pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Each calls fn for every entity in display order. fn must not modify the
// collection.
func (c *Collection[T]) Each(fn func(T)) {
	for _, id := range c.order {
		fn(c.items[id])
	}
}

// Map replaces every entity with fn's result, keeping order. Entities for
// which fn reports false are left unchanged.
func (c *Collection[T]) Map(fn func(T) (T, bool)) int {
	changed := 0
	for _, id := range c.order {
		if v, ok := fn(c.items[id]); ok {
			c.items[id] = v
			changed++
		}
	}
	return changed
}

// Count returns how many entities match pred
func (c *Collection[T]) Count(pred func(T) bool) int {
	n := 0
	for _, id := range c.order {
		if pred(c.items[id]) {
			n++
		}
	}
	return n
}
