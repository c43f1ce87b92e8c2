package ecs

// System represents a behavior that reads and mutates component data once
// per tick. Systems keep their own state between ticks and queue structural
// changes through frame.Commands.
type System interface {
	Execute(frame *UpdateFrame)
}
