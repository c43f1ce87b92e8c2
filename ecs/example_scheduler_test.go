package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/compdb/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	Transform ecs.TypeIndex
	Speed     ecs.TypeIndex
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	db := frame.Database
	speeds, _ := ecs.GetComponents[Speed](db, s.Speed)
	for id, speed := range speeds.Present() {
		if !db.Has(s.Transform, id) {
			continue
		}
		t, _ := ecs.Get[Transform](db, s.Transform, id)
		t.X += speed.DX * float32(frame.DeltaTime)
		t.Y += speed.DY * float32(frame.DeltaTime)
		_ = db.Set(s.Transform, id, t)
	}
}

type HealingSystem struct {
	Hitpoints ecs.TypeIndex
	RegenRate float32
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	hitpoints, _ := ecs.GetComponents[Hitpoints](frame.Database, s.Hitpoints)
	for id, hp := range hitpoints.Present() {
		if hp.Current < hp.Max {
			hp.Current = min(hp.Max, hp.Current+int(s.RegenRate*float32(frame.DeltaTime)))
			_ = frame.Database.Set(s.Hitpoints, id, hp)
		}
	}
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// Systems run in registration order with the database locked against growth,
// and queued commands are flushed once every system has run.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	transform := ecs.RegisterComponent[Transform](registry)
	speed := ecs.RegisterComponent[Speed](registry)
	hitpoints := ecs.RegisterComponent[Hitpoints](registry)
	db, _ := ecs.NewDatabase(registry, 8)

	_ = db.Set(transform, 0, Transform{X: 0, Y: 0})
	_ = db.Set(speed, 0, Speed{DX: 10, DY: 5})
	_ = db.Set(hitpoints, 0, Hitpoints{Current: 80, Max: 100})
	_ = db.Set(transform, 1, Transform{X: 100, Y: 100})
	_ = db.Set(speed, 1, Speed{DX: -5, DY: -5})
	_ = db.Set(hitpoints, 1, Hitpoints{Current: 50, Max: 100})

	scheduler := ecs.NewScheduler(db)
	scheduler.Register(&PhysicsSystem{Transform: transform, Speed: speed})
	scheduler.Register(&HealingSystem{Hitpoints: hitpoints, RegenRate: 10})

	_ = scheduler.Once(1.0)

	fmt.Println("After one frame:")
	for id := ecs.EntityId(0); id < 2; id++ {
		t, _ := ecs.Get[Transform](db, transform, id)
		hp, _ := ecs.Get[Hitpoints](db, hitpoints, id)
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n", t.X, t.Y, hp.Current, hp.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous game loop.
// The Run method blocks and executes all systems at a fixed interval
// until the context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewComponentRegistry()
	transform := ecs.RegisterComponent[Transform](registry)
	speed := ecs.RegisterComponent[Speed](registry)
	db, _ := ecs.NewDatabase(registry, 1)

	_ = db.Set(transform, 0, Transform{})
	_ = db.Set(speed, 0, Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(db)
	scheduler.Register(&PhysicsSystem{Transform: transform, Speed: speed})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}
