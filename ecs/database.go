package ecs

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Database owns one component pool and one presence bitset per registered
// component type. All pools share a single entity bound that only grows.
//
// A Database is not safe for concurrent use. Growth reallocates every pool,
// so the owner must serialize AccommodateMoreEntities against system
// execution; Lock makes that rule enforceable.
type Database struct {
	registry   *ComponentRegistry
	pools      []iComponentPool
	presence   []*presenceBitset
	bound      int
	generation uint64
	locked     bool
	growth     float64
	log        logrus.FieldLogger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for growth and diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(db *Database) {
		if logger != nil {
			db.log = logger
		}
	}
}

// WithGrowthFactor makes growth over-allocate: a request for n slots grows to
// at least ceil(bound*factor). Factors below 1 mean exact fit.
func WithGrowthFactor(factor float64) Option {
	return func(db *Database) {
		db.growth = max(factor, 1)
	}
}

// NewDatabase builds a database with one pool per type in registry, each
// sized to bound. The registry is sealed afterwards.
func NewDatabase(registry *ComponentRegistry, bound int, opts ...Option) (*Database, error) {
	if registry == nil {
		return nil, errors.New("nil component registry")
	}
	if bound < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBound, bound)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	db := &Database{
		registry: registry,
		pools:    make([]iComponentPool, registry.Len()),
		presence: make([]*presenceBitset, registry.Len()),
		bound:    bound,
		growth:   1,
		log:      discard,
	}
	for _, opt := range opts {
		opt(db)
	}

	for idx, rt := range registry.types {
		pool := rt.newPool()
		pool.Resize(bound)
		db.pools[idx] = pool
		db.presence[idx] = newPresenceBitset(bound)
	}
	registry.seal()

	db.log.WithFields(logrus.Fields{
		"types": len(db.pools),
		"bound": bound,
	}).Debug("component database created")
	return db, nil
}

// Registry returns the registry the database was built from.
func (db *Database) Registry() *ComponentRegistry {
	return db.registry
}

// EntityBound returns the number of addressable entity ids.
func (db *Database) EntityBound() int {
	return db.bound
}

// TypeCount returns the number of component pools.
func (db *Database) TypeCount() int {
	return len(db.pools)
}

// Generation is incremented every time the pools are reallocated.
func (db *Database) Generation() uint64 {
	return db.generation
}

// Lock forbids growth until Unlock. Reads and writes stay allowed.
func (db *Database) Lock() {
	db.locked = true
}

// Unlock allows growth again.
func (db *Database) Unlock() {
	db.locked = false
}

// Locked reports whether growth is currently forbidden.
func (db *Database) Locked() bool {
	return db.locked
}

// AccommodateMoreEntities grows every pool and bitset so that ids below
// bound are addressable. Requests at or below the current bound do nothing.
func (db *Database) AccommodateMoreEntities(bound int) error {
	if bound <= db.bound {
		return nil
	}
	if db.locked {
		return fmt.Errorf("%w: cannot grow to %d", ErrDatabaseLocked, bound)
	}

	target := bound
	if db.growth > 1 {
		target = max(target, int(math.Ceil(float64(db.bound)*db.growth)))
	}

	for idx := range db.pools {
		db.pools[idx].Resize(target)
		db.presence[idx].Resize(target)
	}

	from := db.bound
	db.bound = target
	db.generation++

	db.log.WithFields(logrus.Fields{
		"from":       from,
		"to":         target,
		"generation": db.generation,
	}).Debug("accommodated more entities")
	return nil
}

func (db *Database) pool(idx TypeIndex) (iComponentPool, error) {
	if idx < 0 || int(idx) >= len(db.pools) {
		return nil, invalidTypeIndex(idx, len(db.pools))
	}
	return db.pools[idx], nil
}

// Set stores value as entity id's component of type idx and marks it present.
func (db *Database) Set(idx TypeIndex, id EntityId, value any) error {
	pool, err := db.pool(idx)
	if err != nil {
		return err
	}
	if id.Index() >= db.bound {
		return entityOutOfBounds(id, db.bound)
	}
	if err := pool.Write(id, value); err != nil {
		var mismatch TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Index = idx
			return mismatch
		}
		return err
	}
	db.presence[idx].Set(id, true)
	return nil
}

// GetAny returns the slot content for (idx, id) without checking presence.
func (db *Database) GetAny(idx TypeIndex, id EntityId) (any, error) {
	pool, err := db.pool(idx)
	if err != nil {
		return nil, err
	}
	return pool.Read(id)
}

// Get returns the slot content for (idx, id) as a T. Presence is not checked:
// an absent component reads as whatever the slot holds, usually the zero value.
func Get[T any](db *Database, idx TypeIndex, id EntityId) (T, error) {
	var zero T
	pool, err := db.pool(idx)
	if err != nil {
		return zero, err
	}
	typed, ok := pool.(typedPool[T])
	if !ok {
		return zero, TypeMismatchError{Index: idx, Want: pool.Type(), Got: reflect.TypeFor[T]()}
	}
	if id.Index() >= db.bound {
		return zero, entityOutOfBounds(id, db.bound)
	}
	return typed.at(id), nil
}

// Has reports whether entity id currently holds a component of type idx.
// Unknown type indices and ids past the bound report false.
func (db *Database) Has(idx TypeIndex, id EntityId) bool {
	if idx < 0 || int(idx) >= len(db.presence) {
		return false
	}
	return db.presence[idx].Get(id)
}

// Remove clears the component of type idx from entity id. Reference-kind
// slots drop their handle; value-kind slots keep their stale content.
func (db *Database) Remove(idx TypeIndex, id EntityId) error {
	pool, err := db.pool(idx)
	if err != nil {
		return err
	}
	if id.Index() >= db.bound {
		return nil
	}
	db.presence[idx].Set(id, false)
	pool.Release(id)
	return nil
}

// RemoveAll clears every component of entity id.
func (db *Database) RemoveAll(id EntityId) {
	if id.Index() >= db.bound {
		return
	}
	for idx, pool := range db.pools {
		db.presence[idx].Set(id, false)
		pool.Release(id)
	}
}

type indexedComponent struct {
	index TypeIndex
	value any
}

func (db *Database) snapshot(id EntityId) []indexedComponent {
	var out []indexedComponent
	for idx, present := range db.presence {
		if !present.Get(id) {
			continue
		}
		value, _ := db.pools[idx].Read(id)
		out = append(out, indexedComponent{index: TypeIndex(idx), value: value})
	}
	return out
}

// GetAllIndexed returns every component of entity id with its type index,
// in ascending index order. The sequence is captured when GetAllIndexed is
// called and can be iterated any number of times.
func (db *Database) GetAllIndexed(id EntityId) iter.Seq2[TypeIndex, any] {
	components := db.snapshot(id)
	return func(yield func(TypeIndex, any) bool) {
		for _, c := range components {
			if !yield(c.index, c.value) {
				return
			}
		}
	}
}

// GetAll returns every component of entity id in ascending type index order.
func (db *Database) GetAll(id EntityId) iter.Seq[any] {
	components := db.snapshot(id)
	return func(yield func(any) bool) {
		for _, c := range components {
			if !yield(c.value) {
				return
			}
		}
	}
}

// Validate checks that every pool and bitset matches the entity bound and
// that the pool count matches the registry.
func (db *Database) Validate() error {
	if len(db.pools) != db.registry.Len() {
		return fmt.Errorf("pool count %d does not match %d registered types", len(db.pools), db.registry.Len())
	}
	for idx, pool := range db.pools {
		if pool.Len() != db.bound {
			return fmt.Errorf("pool %d (%v) has length %d, bound is %d", idx, pool.Type(), pool.Len(), db.bound)
		}
		if n := db.presence[idx].Len(); n != db.bound {
			return fmt.Errorf("presence bitset %d has length %d, bound is %d", idx, n, db.bound)
		}
	}
	return nil
}
