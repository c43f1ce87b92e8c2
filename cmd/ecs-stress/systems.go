package main

import (
	"fmt"
	"math/rand"

	"github.com/TheBitDrifter/mask"
	"github.com/plus3/compdb/ecs"
)

// randomComponents picks a component set for a new entity and hands each
// component to set. Every entity gets a position and a lifetime.
func randomComponents(rng *rand.Rand, idx componentIndices, set func(ecs.TypeIndex, any)) {
	set(idx.Position, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})
	set(idx.Lifetime, Lifetime{Remaining: 1 + rng.Float64()*4})

	if rng.Intn(10) < 7 {
		set(idx.Velocity, Velocity{DX: rng.Float32()*2 - 1, DY: rng.Float32()*2 - 1})
	}
	if rng.Intn(2) == 0 {
		hp := int32(50 + rng.Intn(50))
		set(idx.Health, Health{Current: hp, Max: hp})
	}
	if rng.Intn(10) < 3 {
		set(idx.Label, &Label{Text: fmt.Sprintf("unit-%d", rng.Intn(1000))})
	}
	if rng.Intn(10) < 2 {
		set(idx.Tags, Tags{"stress", "generated"})
	}
}

// populate creates n entities directly, outside of any tick.
func populate(db *ecs.Database, alloc *allocator, idx componentIndices, rng *rand.Rand, n int) error {
	ids := make([]ecs.EntityId, n)
	for i := range ids {
		ids[i] = alloc.Allocate()
	}
	if err := alloc.Grow(); err != nil {
		return err
	}

	var setErr error
	for _, id := range ids {
		randomComponents(rng, idx, func(ti ecs.TypeIndex, v any) {
			if err := db.Set(ti, id, v); err != nil && setErr == nil {
				setErr = err
			}
		})
	}
	return setErr
}

// SpawnSystem creates Rate new entities per tick through the command buffer.
type SpawnSystem struct {
	idx     componentIndices
	alloc   *allocator
	rng     *rand.Rand
	Rate    int
	Spawned int64
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	for i := 0; i < s.Rate; i++ {
		id := s.alloc.Allocate()
		randomComponents(s.rng, s.idx, func(ti ecs.TypeIndex, v any) {
			frame.Commands.Set(ti, id, v)
		})
		s.Spawned++
	}
	frame.Commands.Accommodate(s.alloc.Bound())
}

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	idx componentIndices
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	db := frame.Database
	velocities, err := ecs.GetComponents[Velocity](db, s.idx.Velocity)
	if err != nil {
		panic(err)
	}
	positions, err := ecs.GetComponents[Position](db, s.idx.Position)
	if err != nil {
		panic(err)
	}

	dt := float32(frame.DeltaTime)
	for id, vel := range velocities.Present() {
		if !positions.Has(id) {
			continue
		}
		pos := positions.At(id)
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
		if err := db.Set(s.idx.Position, id, pos); err != nil {
			panic(err)
		}
	}
}

// AgingSystem counts lifetimes down and releases expired entities after the tick.
type AgingSystem struct {
	idx       componentIndices
	alloc     *allocator
	Despawned int64
}

func (s *AgingSystem) Execute(frame *ecs.UpdateFrame) {
	db := frame.Database
	lifetimes, err := ecs.GetComponents[Lifetime](db, s.idx.Lifetime)
	if err != nil {
		panic(err)
	}

	for id, life := range lifetimes.Present() {
		life.Remaining -= frame.DeltaTime
		if life.Remaining > 0 {
			if err := db.Set(s.idx.Lifetime, id, life); err != nil {
				panic(err)
			}
			continue
		}
		frame.Commands.Defer(func() {
			s.alloc.Release(id)
		})
		s.Despawned++
	}
}

// DamageSystem wears down moving entities with health; at zero they lose
// their health and label but stay alive until their lifetime runs out.
type DamageSystem struct {
	idx    componentIndices
	moving mask.Mask
	Downed int64
}

func newDamageSystem(db *ecs.Database, idx componentIndices) (*DamageSystem, error) {
	moving, err := db.SignatureOf(idx.Velocity, idx.Health)
	if err != nil {
		return nil, err
	}
	return &DamageSystem{idx: idx, moving: moving}, nil
}

func (s *DamageSystem) Execute(frame *ecs.UpdateFrame) {
	db := frame.Database
	healths, err := ecs.GetComponents[Health](db, s.idx.Health)
	if err != nil {
		panic(err)
	}

	for id, h := range healths.Present() {
		if !db.Matches(id, s.moving) {
			continue
		}
		h.Current--
		if h.Current > 0 {
			if err := db.Set(s.idx.Health, id, h); err != nil {
				panic(err)
			}
			continue
		}
		frame.Commands.Remove(s.idx.Health, id)
		frame.Commands.Remove(s.idx.Label, id)
		s.Downed++
	}
}

// CensusSystem samples random entities and counts their components.
type CensusSystem struct {
	rng        *rand.Rand
	Samples    int
	Sampled    int64
	Components int64
}

func (s *CensusSystem) Execute(frame *ecs.UpdateFrame) {
	bound := frame.Database.EntityBound()
	if bound == 0 {
		return
	}
	for i := 0; i < s.Samples; i++ {
		id := ecs.EntityId(s.rng.Intn(bound))
		for range frame.Database.GetAll(id) {
			s.Components++
		}
		s.Sampled++
	}
}
