package ecs

import "errors"

// Commands provides a buffer for deferred database operations that are
// applied after every system of a tick has run. Growth in particular must
// not happen while systems hold pool views.
type Commands struct {
	accommodate int
	sets        []setCommand
	removes     []removeCommand
	removeAlls  []EntityId
	defers      []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type setCommand struct {
	index  TypeIndex
	entity EntityId
	value  any
}

type removeCommand struct {
	index  TypeIndex
	entity EntityId
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Accommodate queues growth of the entity bound. Only the largest request
// of a tick is kept.
func (c *Commands) Accommodate(bound int) {
	c.accommodate = max(c.accommodate, bound)
}

// Set queues a component write.
func (c *Commands) Set(index TypeIndex, entity EntityId, value any) {
	c.sets = append(c.sets, setCommand{index: index, entity: entity, value: value})
}

// Remove queues a component removal.
func (c *Commands) Remove(index TypeIndex, entity EntityId) {
	c.removes = append(c.removes, removeCommand{index: index, entity: entity})
}

// RemoveAll queues removal of every component of an entity.
func (c *Commands) RemoveAll(entity EntityId) {
	c.removeAlls = append(c.removeAlls, entity)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	n := len(c.sets) + len(c.removes) + len(c.removeAlls) + len(c.defers)
	if c.accommodate > 0 {
		n++
	}
	return n
}

// Flush applies all commands to the provided database, resetting the buffer
// state. Growth runs first so queued sets can target new ids; removals run
// before sets so a remove-then-set in the same tick leaves the component
// present. Every failing operation is reported; the rest still apply.
func (c *Commands) Flush(db *Database) error {
	var errs []error

	if c.accommodate > 0 {
		if err := db.AccommodateMoreEntities(c.accommodate); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.removes {
		if err := db.Remove(cmd.index, cmd.entity); err != nil {
			errs = append(errs, err)
		}
	}

	for _, entity := range c.removeAlls {
		db.RemoveAll(entity)
	}

	for _, cmd := range c.sets {
		if err := db.Set(cmd.index, cmd.entity, cmd.value); err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.accommodate = 0
	c.sets = c.sets[:0]
	c.removes = c.removes[:0]
	c.removeAlls = c.removeAlls[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
