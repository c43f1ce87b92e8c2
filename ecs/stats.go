package ecs

// DatabaseStats is a point-in-time summary of a Database.
type DatabaseStats struct {
	EntityBound  int         `json:"entityBound"`
	TypeCount    int         `json:"typeCount"`
	Generation   uint64      `json:"generation"`
	Locked       bool        `json:"locked"`
	PresentTotal int         `json:"presentTotal"`
	Types        []TypeStats `json:"types"`
}

// TypeStats describes one component pool.
type TypeStats struct {
	Index   TypeIndex     `json:"index"`
	Name    string        `json:"name"`
	Kind    ComponentKind `json:"kind"`
	Present int           `json:"present"`
}

// CollectStats counts present components per type.
func (db *Database) CollectStats() DatabaseStats {
	stats := DatabaseStats{
		EntityBound: db.bound,
		TypeCount:   len(db.pools),
		Generation:  db.generation,
		Locked:      db.locked,
		Types:       make([]TypeStats, len(db.pools)),
	}
	for idx, pool := range db.pools {
		present := db.presence[idx].Count()
		stats.Types[idx] = TypeStats{
			Index:   TypeIndex(idx),
			Name:    pool.Type().String(),
			Kind:    pool.Kind(),
			Present: present,
		}
		stats.PresentTotal += present
	}
	return stats
}
