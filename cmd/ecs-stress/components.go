package main

import "github.com/plus3/compdb/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Lifetime struct {
	Remaining float64
}

type Health struct {
	Current, Max int32
}

// Label is a reference-kind component; its pool holds *Label handles.
type Label struct {
	Text string
}

// Tags is a reference-kind slice component.
type Tags []string

type componentIndices struct {
	Position ecs.TypeIndex
	Velocity ecs.TypeIndex
	Lifetime ecs.TypeIndex
	Health   ecs.TypeIndex
	Label    ecs.TypeIndex
	Tags     ecs.TypeIndex
}

func registerComponents(registry *ecs.ComponentRegistry) componentIndices {
	return componentIndices{
		Position: ecs.RegisterComponent[Position](registry),
		Velocity: ecs.RegisterComponent[Velocity](registry),
		Lifetime: ecs.RegisterComponent[Lifetime](registry),
		Health:   ecs.RegisterComponent[Health](registry),
		Label:    ecs.RegisterComponent[*Label](registry),
		Tags:     ecs.RegisterComponent[Tags](registry),
	}
}
