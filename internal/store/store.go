// Package store owns the multi-tenant record snapshot: one bundle of named
// collections per school, the school directory, the operator credential and
// the persisted active-session marker. Every operation runs under one mutex,
// so whole-collection replacement is atomic and interleaved read-modify-write
// cycles cannot lose updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"school-erp-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrSchoolNotFound is returned by directory writes against an unknown id.
	ErrSchoolNotFound = errors.New("store: school not found")
	// ErrInvalidCredentials is the uniform authentication failure; callers
	// cannot distinguish an unknown handle from a wrong password.
	ErrInvalidCredentials = errors.New("store: invalid credentials")
)

// SeedOptions controls what a fresh snapshot contains.
type SeedOptions struct {
	SuperUsername string
	SuperPassword string
	DemoData      bool
}

// Store is the tenant-scoped record store. It keeps the whole snapshot in
// memory and persists it through the backend after every mutation.
type Store struct {
	backend SnapshotBackend
	log     *zap.Logger
	seed    SeedOptions

	mu   sync.Mutex
	snap *model.Snapshot
}

// New creates a store over the given backend. Call LoadOrInitialize before
// any other method.
func New(backend SnapshotBackend, seed SeedOptions, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log, seed: seed}
}

// LoadOrInitialize reads the snapshot from the backend. A missing or
// structurally invalid snapshot is discarded and reseeded; read corruption is
// logged, never surfaced. Availability wins over data integrity here, the
// same policy the store has always had.
func (s *Store) LoadOrInitialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Load()
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.log.Info("No snapshot found, seeding fresh data")
	case err != nil:
		s.log.Warn("Snapshot read failed, reseeding", zap.Error(err))
	default:
		var snap model.Snapshot
		if uerr := json.Unmarshal(data, &snap); uerr != nil {
			s.log.Warn("Corrupt snapshot, reseeding", zap.Error(uerr))
		} else if !snap.Valid() {
			s.log.Warn("Snapshot missing expected structure, reseeding")
		} else {
			s.snap = &snap
			s.ensureNextIDLocked()
			s.log.Info("Snapshot loaded",
				zap.Int("schools", len(snap.Schools)))
			return nil
		}
	}

	snap, err := seedSnapshot(s.seed)
	if err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}
	s.snap = snap
	return s.persistLocked()
}

// ensureNextIDLocked backfills the id counter for snapshots written before
// the counter existed.
func (s *Store) ensureNextIDLocked() {
	if s.snap.NextSchoolID != 0 {
		return
	}
	var max uint
	for _, sc := range s.snap.Schools {
		if sc.ID > max {
			max = sc.ID
		}
	}
	s.snap.NextSchoolID = max + 1
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.backend.Save(data); err != nil {
		s.log.Error("Snapshot save failed", zap.Error(err))
		return err
	}
	return nil
}

// --- COLLECTION ACCESS ---

// Collection returns the named collection for the school. Reads never fail:
// an unknown school or key yields the empty collection.
func (s *Store) Collection(schoolID uint, key model.CollectionKey) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.snap.SchoolData[dataKey(schoolID)]
	if !ok {
		return model.EmptyCollection
	}
	records, _ := d.Collection(key)
	return records
}

// Bundle returns the school's full serialized bundle, or an empty default
// bundle when the school is unknown.
func (s *Store) Bundle(schoolID uint) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.snap.SchoolData[dataKey(schoolID)]
	if !ok {
		d = model.NewSchoolData("", "")
	}
	data, err := json.Marshal(d)
	if err != nil {
		// Bundles are plain data structs; this cannot fail in practice.
		s.log.Error("Bundle encode failed", zap.Uint("school_id", schoolID), zap.Error(err))
		return json.RawMessage("{}")
	}
	return data
}

// ReplaceCollection replaces the named collection wholesale and persists.
// Last writer wins; there is no merge.
func (s *Store) ReplaceCollection(schoolID uint, key model.CollectionKey, records json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.snap.SchoolData[dataKey(schoolID)]
	if !ok {
		return ErrSchoolNotFound
	}
	if err := d.SetCollection(key, records); err != nil {
		return err
	}
	return s.persistLocked()
}

// SaveProfile replaces the school's singleton profile record and persists.
func (s *Store) SaveProfile(schoolID uint, profile model.SchoolProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.snap.SchoolData[dataKey(schoolID)]
	if !ok {
		return ErrSchoolNotFound
	}
	d.SchoolProfile = profile
	return s.persistLocked()
}

// --- SCHOOL DIRECTORY ---

// Schools lists all directory entries without credential hashes.
func (s *Store) Schools() []model.School {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.School, 0, len(s.snap.Schools))
	for _, sc := range s.snap.Schools {
		out = append(out, sc.Sanitized())
	}
	return out
}

// SchoolByID returns the sanitized directory entry for id.
func (s *Store) SchoolByID(id uint) (model.School, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sc := range s.snap.Schools {
		if sc.ID == id {
			return sc.Sanitized(), true
		}
	}
	return model.School{}, false
}

// CreateSchool allocates the next id, stores the entry with a hashed
// credential and provisions an empty bundle carrying the school's name and
// address.
func (s *Store) CreateSchool(sc model.School, password string) (model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := hashPassword(password)
	if err != nil {
		return model.School{}, fmt.Errorf("hash password: %w", err)
	}

	s.ensureNextIDLocked()
	sc.ID = s.snap.NextSchoolID
	s.snap.NextSchoolID++
	sc.Password = hash

	s.snap.Schools = append(s.snap.Schools, sc)
	s.snap.SchoolData[dataKey(sc.ID)] = model.NewSchoolData(sc.Name, sc.Address)

	if err := s.persistLocked(); err != nil {
		return model.School{}, err
	}
	s.log.Info("School created", zap.Uint("id", sc.ID), zap.String("name", sc.Name))
	return sc.Sanitized(), nil
}

// UpdateSchool replaces the entry's fields by id. Name and address changes
// propagate into the bundle's profile record, which is a denormalized copy
// this method alone keeps in sync. An empty newPassword keeps the current
// credential.
func (s *Store) UpdateSchool(sc model.School, newPassword string) (model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.snap.Schools {
		if existing.ID == sc.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.School{}, ErrSchoolNotFound
	}

	sc.Password = s.snap.Schools[idx].Password
	if newPassword != "" {
		hash, err := hashPassword(newPassword)
		if err != nil {
			return model.School{}, fmt.Errorf("hash password: %w", err)
		}
		sc.Password = hash
	}
	s.snap.Schools[idx] = sc

	if d, ok := s.snap.SchoolData[dataKey(sc.ID)]; ok {
		d.SchoolProfile.Name = sc.Name
		d.SchoolProfile.Address = sc.Address
	}

	if err := s.persistLocked(); err != nil {
		return model.School{}, err
	}
	return sc.Sanitized(), nil
}

// DeleteSchool removes the directory entry and its bundle. Deleting the
// active school also clears the persisted session marker. Deleting an
// unknown id is a no-op.
func (s *Store) DeleteSchool(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snap.Schools[:0]
	for _, sc := range s.snap.Schools {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	s.snap.Schools = kept
	delete(s.snap.SchoolData, dataKey(id))

	if s.snap.ActiveSchoolID != nil && *s.snap.ActiveSchoolID == id {
		s.snap.ActiveSchoolID = nil
	}
	return s.persistLocked()
}

// --- SESSION STATE ---

// Authenticate checks a school login. It does not change the session.
func (s *Store) Authenticate(loginID, password string) (model.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sc := range s.snap.Schools {
		if sc.LoginID != loginID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(sc.Password), []byte(password)) != nil {
			break
		}
		return sc.Sanitized(), nil
	}
	return model.School{}, ErrInvalidCredentials
}

// ActiveSchoolID returns the persisted active-session marker, nil when no
// school is logged in.
func (s *Store) ActiveSchoolID() *uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ActiveSchoolID == nil {
		return nil
	}
	id := *s.snap.ActiveSchoolID
	return &id
}

// SetActiveSchool persists the active-session marker.
func (s *Store) SetActiveSchool(id *uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.ActiveSchoolID = id
	return s.persistLocked()
}

// --- SUPER ADMIN ---

// AuthenticateSuper checks the platform operator credential.
func (s *Store) AuthenticateSuper(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username != s.snap.SuperAdmin.Username {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.snap.SuperAdmin.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangeSuperPassword rotates the operator credential after verifying the
// current one.
func (s *Store) ChangeSuperPassword(current, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bcrypt.CompareHashAndPassword([]byte(s.snap.SuperAdmin.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.snap.SuperAdmin.Password = hash
	return s.persistLocked()
}
