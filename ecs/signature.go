package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

// signatureCapacity is the number of type indices a mask.Mask can mark.
const signatureCapacity = 256

func (db *Database) checkSignatureCapacity() error {
	if len(db.pools) > signatureCapacity {
		return fmt.Errorf("%w: %d registered, %d supported", ErrSignatureOverflow, len(db.pools), signatureCapacity)
	}
	return nil
}

// Signature returns the set of type indices entity id currently holds.
// Ids past the bound have an empty signature.
func (db *Database) Signature(id EntityId) (mask.Mask, error) {
	var m mask.Mask
	if err := db.checkSignatureCapacity(); err != nil {
		return m, err
	}
	for idx, present := range db.presence {
		if present.Get(id) {
			m.Mark(uint32(idx))
		}
	}
	return m, nil
}

// SignatureOf builds a mask from type indices, for use with Matches.
func (db *Database) SignatureOf(indices ...TypeIndex) (mask.Mask, error) {
	var m mask.Mask
	if err := db.checkSignatureCapacity(); err != nil {
		return m, err
	}
	for _, idx := range indices {
		if _, err := db.pool(idx); err != nil {
			return m, err
		}
		m.Mark(uint32(idx))
	}
	return m, nil
}

// Matches reports whether entity id holds every type in required.
func (db *Database) Matches(id EntityId, required mask.Mask) bool {
	sig, err := db.Signature(id)
	if err != nil {
		return false
	}
	return sig.ContainsAll(required)
}

// MatchesNone reports whether entity id holds none of the types in excluded.
func (db *Database) MatchesNone(id EntityId, excluded mask.Mask) bool {
	sig, err := db.Signature(id)
	if err != nil {
		return false
	}
	return sig.ContainsNone(excluded)
}

// HasAll reports whether entity id holds every listed type.
func (db *Database) HasAll(id EntityId, indices ...TypeIndex) bool {
	for _, idx := range indices {
		if !db.Has(idx, id) {
			return false
		}
	}
	return true
}
