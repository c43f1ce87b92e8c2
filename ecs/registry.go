package ecs

import (
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// TypeIndex is the stable, contiguous index a registered component type
// receives. Indices run from 0 to Len()-1 in registration order.
type TypeIndex int

// ComponentKind selects the storage strategy of a component pool.
type ComponentKind uint8

const (
	// ValueKind pools hold components inline with zero-filled slots.
	ValueKind ComponentKind = iota
	// ReferenceKind pools hold nullable handles that are dropped on removal.
	ReferenceKind
)

func (k ComponentKind) String() string {
	switch k {
	case ValueKind:
		return "value"
	case ReferenceKind:
		return "reference"
	default:
		return fmt.Sprintf("ComponentKind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k ComponentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// kindOf reports the storage kind for t. Types that are themselves handles
// to shared or heap-held data get reference storage.
func kindOf(t reflect.Type) ComponentKind {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return ReferenceKind
	default:
		return ValueKind
	}
}

type registeredType struct {
	typ     reflect.Type
	kind    ComponentKind
	newPool func() iComponentPool
}

// ComponentRegistry assigns every component type a TypeIndex before any
// database is built. Each Database is built from one registry; once that
// happens the registry is sealed and the set of types is closed.
type ComponentRegistry struct {
	types   []registeredType
	indices *intmap.Map[int, TypeIndex]
	sealed  bool
}

// NewComponentRegistry creates a new, empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		indices: intmap.New[int, TypeIndex](32),
	}
}

// RegisterComponent registers T with the given registry and returns its index.
// Registering a type twice returns the original index. Pointer, interface,
// slice, map, channel and func types get reference-kind storage; everything
// else is stored by value.
func RegisterComponent[T any](r *ComponentRegistry) TypeIndex {
	t := reflect.TypeFor[T]()
	if idx, ok := r.indices.Get(typeId(t)); ok {
		return idx
	}
	if r.sealed {
		panic("component type " + t.String() + " registered after the registry was sealed")
	}

	kind := kindOf(t)
	entry := registeredType{typ: t, kind: kind}
	if kind == ReferenceKind {
		entry.newPool = func() iComponentPool { return newReferencePool[T](t) }
	} else {
		entry.newPool = func() iComponentPool { return newValuePool[T](t) }
	}

	idx := TypeIndex(len(r.types))
	r.types = append(r.types, entry)
	r.indices.Put(typeId(t), idx)
	return idx
}

// IndexFor returns the index of T. It panics if T was never registered.
func IndexFor[T any](r *ComponentRegistry) TypeIndex {
	t := reflect.TypeFor[T]()
	idx, ok := r.IndexOf(t)
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return idx
}

// IndexOf returns the index of t and whether it is registered.
func (r *ComponentRegistry) IndexOf(t reflect.Type) (TypeIndex, bool) {
	if t == nil {
		return 0, false
	}
	return r.indices.Get(typeId(t))
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Type returns the component type registered at idx, or nil.
func (r *ComponentRegistry) Type(idx TypeIndex) reflect.Type {
	if !r.valid(idx) {
		return nil
	}
	return r.types[idx].typ
}

// Kind returns the storage kind of the type registered at idx.
func (r *ComponentRegistry) Kind(idx TypeIndex) ComponentKind {
	if !r.valid(idx) {
		return ValueKind
	}
	return r.types[idx].kind
}

// Sealed reports whether a database has been built from this registry.
func (r *ComponentRegistry) Sealed() bool {
	return r.sealed
}

func (r *ComponentRegistry) valid(idx TypeIndex) bool {
	return idx >= 0 && int(idx) < len(r.types)
}

func (r *ComponentRegistry) seal() {
	r.sealed = true
}
