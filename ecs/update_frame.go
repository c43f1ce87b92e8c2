package ecs

// UpdateFrame is passed to every system during one scheduler tick.
type UpdateFrame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Database  *Database
}

func newUpdateFrame(tick uint64, dt float64, db *Database) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
		Database:  db,
	}
}
