package ecs

import "reflect"

// iComponentPool is the type-erased view of one component type's dense
// storage. Slot i belongs to entity id i.
type iComponentPool interface {
	Resize(bound int)
	Read(id EntityId) (any, error)
	Write(id EntityId, item any) error
	Release(id EntityId)
	Len() int
	Kind() ComponentKind
	Type() reflect.Type
}

// typedPool is the strongly-typed accessor layered on top of a pool for the
// hot path. Both pool variants implement it for their own T.
type typedPool[T any] interface {
	at(id EntityId) T
	slots() []T
}

// denseSlots holds one T per entity id. It only ever grows.
type denseSlots[T any] struct {
	typ   reflect.Type
	items []T
}

// Resize grows the backing storage to bound slots. New slots hold the zero
// value of T; existing slots are copied unchanged. Shrinking is a no-op.
func (s *denseSlots[T]) Resize(bound int) {
	if bound <= len(s.items) {
		return
	}
	s.items = append(s.items, make([]T, bound-len(s.items))...)
}

func (s *denseSlots[T]) Len() int {
	return len(s.items)
}

func (s *denseSlots[T]) Type() reflect.Type {
	return s.typ
}

func (s *denseSlots[T]) Read(id EntityId) (any, error) {
	if id.Index() >= len(s.items) {
		return nil, entityOutOfBounds(id, len(s.items))
	}
	return s.items[id], nil
}

func (s *denseSlots[T]) at(id EntityId) T {
	return s.items[id]
}

func (s *denseSlots[T]) slots() []T {
	return s.items
}

func (s *denseSlots[T]) put(id EntityId, value T) error {
	if id.Index() >= len(s.items) {
		return entityOutOfBounds(id, len(s.items))
	}
	s.items[id] = value
	return nil
}

// valuePool stores components inline. An unset slot reads as the zero value,
// so presence must always come from the bitset.
type valuePool[T any] struct {
	denseSlots[T]
}

func newValuePool[T any](typ reflect.Type) *valuePool[T] {
	return &valuePool[T]{denseSlots[T]{typ: typ}}
}

// Write accepts either a T or a non-nil *T.
func (p *valuePool[T]) Write(id EntityId, item any) error {
	switch v := item.(type) {
	case T:
		return p.put(id, v)
	case *T:
		if v != nil {
			return p.put(id, *v)
		}
	}
	return TypeMismatchError{Want: p.typ, Got: reflect.TypeOf(item)}
}

// Release leaves the slot as-is; it is unreachable once the presence bit is cleared.
func (p *valuePool[T]) Release(EntityId) {}

func (p *valuePool[T]) Kind() ComponentKind {
	return ValueKind
}

// referencePool stores nullable handles (pointers or interface values).
// Removing a component drops the handle so the instance can be collected.
type referencePool[T any] struct {
	denseSlots[T]
}

func newReferencePool[T any](typ reflect.Type) *referencePool[T] {
	return &referencePool[T]{denseSlots[T]{typ: typ}}
}

// Write accepts a T or an untyped nil, which stores an empty handle.
func (p *referencePool[T]) Write(id EntityId, item any) error {
	if item == nil {
		var empty T
		return p.put(id, empty)
	}
	v, ok := item.(T)
	if !ok {
		return TypeMismatchError{Want: p.typ, Got: reflect.TypeOf(item)}
	}
	return p.put(id, v)
}

func (p *referencePool[T]) Release(id EntityId) {
	if id.Index() < len(p.items) {
		var empty T
		p.items[id] = empty
	}
}

func (p *referencePool[T]) Kind() ComponentKind {
	return ReferenceKind
}
