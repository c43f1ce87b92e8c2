package main

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/compdb/ecs"
)

// allocator hands out entity ids, recycling released ones first. It never
// grows the database itself during a tick; callers queue the bound it reports.
type allocator struct {
	db    *ecs.Database
	next  ecs.EntityId
	free  []ecs.EntityId
	alive *intmap.Map[ecs.EntityId, struct{}]
}

func newAllocator(db *ecs.Database) *allocator {
	return &allocator{
		db:    db,
		alive: intmap.New[ecs.EntityId, struct{}](1024),
	}
}

// Allocate returns an unused id.
func (a *allocator) Allocate() ecs.EntityId {
	var id ecs.EntityId
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = a.next
		a.next++
	}
	a.alive.Put(id, struct{}{})
	return id
}

// Bound is the entity bound the database needs for every id handed out so far.
func (a *allocator) Bound() int {
	return int(a.next)
}

// Grow makes every allocated id addressable. It must not run mid-tick.
func (a *allocator) Grow() error {
	return a.db.AccommodateMoreEntities(a.Bound())
}

// Release removes all components of id and makes it available again.
// Releasing an id that is not alive does nothing.
func (a *allocator) Release(id ecs.EntityId) bool {
	if !a.Alive(id) {
		return false
	}
	a.alive.Del(id)
	a.db.RemoveAll(id)
	a.free = append(a.free, id)
	return true
}

// Alive reports whether id is currently allocated.
func (a *allocator) Alive(id ecs.EntityId) bool {
	_, ok := a.alive.Get(id)
	return ok
}

// Live returns the number of allocated ids.
func (a *allocator) Live() int {
	return a.alive.Len()
}
