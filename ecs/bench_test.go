package ecs_test

import (
	"testing"

	"github.com/plus3/compdb/ecs"
)

const benchEntities = 10000

func BenchmarkSet(b *testing.B) {
	db := newTestDatabase(benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = db.Set(positionIdx, ecs.EntityId(i%benchEntities), Position{X: 1.0, Y: 2.0})
	}
}

func BenchmarkSetReference(b *testing.B) {
	db := newTestDatabase(benchEntities)
	sprite := &Sprite{Path: "bench.png"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = db.Set(spriteIdx, ecs.EntityId(i%benchEntities), sprite)
	}
}

func BenchmarkGet(b *testing.B) {
	db := newTestDatabase(benchEntities)
	_ = db.Set(positionIdx, 42, Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Position](db, positionIdx, 42)
	}
}

func BenchmarkHas(b *testing.B) {
	db := newTestDatabase(benchEntities)
	_ = db.Set(positionIdx, 42, Position{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = db.Has(positionIdx, ecs.EntityId(i%benchEntities))
	}
}

func BenchmarkRemoveAll(b *testing.B) {
	db := newTestDatabase(benchEntities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := ecs.EntityId(i % benchEntities)
		_ = db.Set(positionIdx, id, Position{})
		_ = db.Set(spriteIdx, id, &Sprite{})
		db.RemoveAll(id)
	}
}

func BenchmarkGetAll(b *testing.B) {
	db := newTestDatabase(16)
	_ = db.Set(positionIdx, 1, Position{})
	_ = db.Set(healthIdx, 1, Health{})
	_ = db.Set(spriteIdx, 1, &Sprite{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range db.GetAll(1) {
		}
	}
}

func BenchmarkIteratePool(b *testing.B) {
	db := newTestDatabase(benchEntities)
	for i := 0; i < benchEntities; i += 2 {
		_ = db.Set(velocityIdx, ecs.EntityId(i), Velocity{DX: 1})
	}
	view, _ := ecs.GetComponents[Velocity](db, velocityIdx)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum float32
		for _, v := range view.Present() {
			sum += v.DX
		}
		_ = sum
	}
}

func BenchmarkAccommodate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		db := newTestDatabase(0)
		for bound := 64; bound <= benchEntities; bound *= 2 {
			_ = db.AccommodateMoreEntities(bound)
		}
	}
}

func BenchmarkAccommodateWithGrowthFactor(b *testing.B) {
	for i := 0; i < b.N; i++ {
		db, _ := ecs.NewDatabase(newTestRegistry(), 64, ecs.WithGrowthFactor(1.5))
		for bound := 65; bound <= benchEntities; bound++ {
			_ = db.AccommodateMoreEntities(bound)
		}
	}
}
