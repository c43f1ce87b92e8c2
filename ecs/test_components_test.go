package ecs_test

import "github.com/plus3/compdb/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

// Custom primitive types for testing non-struct components
type Score int32

// Sprite is stored by reference: components are registered as *Sprite.
type Sprite struct {
	Path string
}

// Behavior is an interface component, also stored by reference.
type Behavior interface {
	Act() string
}

type idleBehavior struct{}

func (idleBehavior) Act() string { return "idle" }

type Inventory []string

// Indices of the fixtures registered by newTestRegistry.
const (
	positionIdx ecs.TypeIndex = iota
	velocityIdx
	nameIdx
	healthIdx
	scoreIdx
	spriteIdx
	behaviorIdx
	inventoryIdx
)

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[*Sprite](registry)
	ecs.RegisterComponent[Behavior](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}

func newTestDatabase(bound int) *ecs.Database {
	db, err := ecs.NewDatabase(newTestRegistry(), bound)
	if err != nil {
		panic(err)
	}
	return db
}

func collect(db *ecs.Database, id ecs.EntityId) []any {
	var out []any
	for c := range db.GetAll(id) {
		out = append(out, c)
	}
	return out
}
