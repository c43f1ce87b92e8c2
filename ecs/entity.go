package ecs

// EntityId identifies one entity. It doubles as the slot index in every
// component pool, so it is only addressable while it is below the
// database's current entity bound.
type EntityId uint32

// Index returns the id as a slot position.
func (e EntityId) Index() int {
	return int(e)
}
