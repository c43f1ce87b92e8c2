package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidTypeIndex is returned when a type index is outside 0..N-1.
	ErrInvalidTypeIndex = errors.New("invalid component type index")
	// ErrEntityOutOfBounds is returned when writing to an entity id at or past the entity bound.
	ErrEntityOutOfBounds = errors.New("entity id out of bounds")
	// ErrTypeMismatch is returned when a value or a typed read does not match a pool's component type.
	ErrTypeMismatch = errors.New("component type mismatch")
	// ErrDatabaseLocked is returned when growth is requested while systems are running.
	ErrDatabaseLocked = errors.New("component database is locked")
	// ErrInvalidBound is returned for a negative entity bound.
	ErrInvalidBound = errors.New("invalid entity bound")
	// ErrSignatureOverflow is returned when more types are registered than a signature mask can hold.
	ErrSignatureOverflow = errors.New("too many component types for a signature")
)

// TypeMismatchError describes a value or typed read that does not fit the
// pool registered at Index.
type TypeMismatchError struct {
	Index TypeIndex
	Want  reflect.Type
	Got   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("component type mismatch at index %d: want %v, got %v", e.Index, e.Want, e.Got)
}

func (e TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func invalidTypeIndex(index TypeIndex, count int) error {
	return fmt.Errorf("%w: %d (registered types: %d)", ErrInvalidTypeIndex, index, count)
}

func entityOutOfBounds(id EntityId, bound int) error {
	return fmt.Errorf("%w: %d (bound: %d)", ErrEntityOutOfBounds, id, bound)
}
