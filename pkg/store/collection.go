package store

import "fmt"

type entity interface {
	EntityID() string
}

// collection is an insertion-ordered list of entities keyed by id.
type collection[T entity] struct {
	name  string
	items []T
}

func (c *collection[T]) index(id string) int {
	for i := range c.items {
		if c.items[i].EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) has(id string) bool {
	return c.index(id) >= 0
}

// add appends item. A duplicate id is a programming error.
func (c *collection[T]) add(item T) {
	if c.has(item.EntityID()) {
		panic(fmt.Sprintf("store: duplicate %s id %q", c.name, item.EntityID()))
	}
	c.items = append(c.items, item)
}

func (c *collection[T]) get(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// update rewrites the item with the given id in place, keeping its position.
func (c *collection[T]) update(id string, fn func(*T)) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	fn(&c.items[i])
	return c.items[i], true
}

func (c *collection[T]) remove(id string) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, true
}

// snapshot copies the items so callers cannot mutate the collection.
func (c *collection[T]) snapshot(clone func(T) T) []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		if clone != nil {
			item = clone(item)
		}
		out[i] = item
	}
	return out
}

// reset replaces the contents, rejecting duplicate ids.
func (c *collection[T]) reset(items []T, clone func(T) T) error {
	seen := make(map[string]bool, len(items))
	next := make([]T, 0, len(items))
	for _, item := range items {
		id := item.EntityID()
		if id == "" {
			return fmt.Errorf("%s without id", c.name)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s id %q", c.name, id)
		}
		seen[id] = true
		if clone != nil {
			item = clone(item)
		}
		next = append(next, item)
	}
	c.items = next
	return nil
}
