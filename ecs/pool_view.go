package ecs

import (
	"iter"
	"reflect"
)

// PoolView is a read-only, dense view over every slot of one component pool.
// It contains a slot for every id below the entity bound, present or not;
// use Has or Present to tell the two apart.
type PoolView[T any] struct {
	db         *Database
	index      TypeIndex
	pool       typedPool[T]
	presence   *presenceBitset
	generation uint64
}

// GetComponents returns a view over the whole pool registered at idx.
func GetComponents[T any](db *Database, idx TypeIndex) (PoolView[T], error) {
	pool, err := db.pool(idx)
	if err != nil {
		return PoolView[T]{}, err
	}
	typed, ok := pool.(typedPool[T])
	if !ok {
		return PoolView[T]{}, TypeMismatchError{Index: idx, Want: pool.Type(), Got: reflect.TypeFor[T]()}
	}
	return PoolView[T]{
		db:         db,
		index:      idx,
		pool:       typed,
		presence:   db.presence[idx],
		generation: db.generation,
	}, nil
}

// Index returns the type index the view was taken for.
func (v PoolView[T]) Index() TypeIndex {
	return v.index
}

// Len returns the number of slots, which equals the entity bound.
func (v PoolView[T]) Len() int {
	if v.pool == nil {
		return 0
	}
	return len(v.pool.slots())
}

// At returns the slot for id. It panics if id is past the bound.
func (v PoolView[T]) At(id EntityId) T {
	return v.pool.at(id)
}

// Has reports the presence flag for id.
func (v PoolView[T]) Has(id EntityId) bool {
	return v.presence != nil && v.presence.Get(id)
}

// Stale reports whether the database grew after the view was taken.
// A stale view still reads current data but its Len has changed.
func (v PoolView[T]) Stale() bool {
	return v.db != nil && v.db.generation != v.generation
}

// All yields every slot, present or not.
func (v PoolView[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if v.pool == nil {
			return
		}
		for i, item := range v.pool.slots() {
			if !yield(EntityId(i), item) {
				return
			}
		}
	}
}

// Present yields only the slots whose presence flag is set.
func (v PoolView[T]) Present() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if v.pool == nil {
			return
		}
		for i, item := range v.pool.slots() {
			if !v.presence.Get(EntityId(i)) {
				continue
			}
			if !yield(EntityId(i), item) {
				return
			}
		}
	}
}
