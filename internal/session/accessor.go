package session

import (
	"encoding/json"
	"errors"

	"school-erp-service/internal/model"
	"school-erp-service/internal/store"
)

// ErrNoActiveSchool is returned by scoped writes when no school is logged
// in. Reads never fail; they resolve to empty data instead.
var ErrNoActiveSchool = errors.New("session: no active school")

// Accessor is the tenant-scoped view of the record store. Every call
// resolves the active school at call time, so callers must not assume the
// session is stable between two calls.
type Accessor struct {
	sessions *Manager
	store    *store.Store
}

// Data returns the named collection of the active school, or the empty
// collection when no school is active.
func (a *Accessor) Data(key model.CollectionKey) json.RawMessage {
	sc, ok := a.sessions.ActiveSchool()
	if !ok {
		return model.EmptyCollection
	}
	return a.store.Collection(sc.ID, key)
}

// ActiveData returns the active school's full serialized bundle, or the
// empty default bundle when no school is active.
func (a *Accessor) ActiveData() json.RawMessage {
	sc, ok := a.sessions.ActiveSchool()
	if !ok {
		empty, _ := json.Marshal(model.NewSchoolData("", ""))
		return empty
	}
	return a.store.Bundle(sc.ID)
}

// SetData replaces the named collection of the active school wholesale.
func (a *Accessor) SetData(key model.CollectionKey, records json.RawMessage) error {
	sc, ok := a.sessions.ActiveSchool()
	if !ok {
		return ErrNoActiveSchool
	}
	return a.store.ReplaceCollection(sc.ID, key, records)
}

// SaveProfile replaces the active school's profile record.
func (a *Accessor) SaveProfile(profile model.SchoolProfile) error {
	sc, ok := a.sessions.ActiveSchool()
	if !ok {
		return ErrNoActiveSchool
	}
	return a.store.SaveProfile(sc.ID, profile)
}
