// Package session tracks which school is currently authenticated and whether
// the platform operator is, and hands out a collection accessor scoped to the
// active school. The school session survives restarts through the store's
// persisted marker; the operator session is ephemeral by design.
package session

import (
	"sync"

	"school-erp-service/internal/model"
	"school-erp-service/internal/store"

	"go.uber.org/zap"
)

// Manager is the session context. The two sessions are independent: either,
// both or neither may be active.
type Manager struct {
	store *store.Store
	log   *zap.Logger

	mu          sync.Mutex
	superActive bool
}

// NewManager creates a session context over the store.
func NewManager(st *store.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: st, log: log}
}

// Login authenticates a school and marks it active. Failure is uniform; the
// caller learns nothing beyond "invalid credentials".
func (m *Manager) Login(loginID, password string) (model.School, error) {
	sc, err := m.store.Authenticate(loginID, password)
	if err != nil {
		m.log.Warn("School login failed", zap.String("login_id", loginID))
		return model.School{}, err
	}
	id := sc.ID
	if err := m.store.SetActiveSchool(&id); err != nil {
		return model.School{}, err
	}
	m.log.Info("School logged in", zap.Uint("school_id", sc.ID), zap.String("name", sc.Name))
	return sc, nil
}

// Logout clears the active school. Idempotent.
func (m *Manager) Logout() error {
	return m.store.SetActiveSchool(nil)
}

// ActiveSchool resolves the currently active school. A stale marker left by
// a deleted school resolves to "not logged in".
func (m *Manager) ActiveSchool() (model.School, bool) {
	id := m.store.ActiveSchoolID()
	if id == nil {
		return model.School{}, false
	}
	return m.store.SchoolByID(*id)
}

// LoadSession restores the school session at startup from the persisted
// active-school marker.
func (m *Manager) LoadSession() (model.School, bool) {
	sc, ok := m.ActiveSchool()
	if ok {
		m.log.Info("Session restored", zap.Uint("school_id", sc.ID), zap.String("name", sc.Name))
	}
	return sc, ok
}

// SuperLogin authenticates the platform operator. The flag lives only in
// memory and dies with the process.
func (m *Manager) SuperLogin(username, password string) error {
	if err := m.store.AuthenticateSuper(username, password); err != nil {
		m.log.Warn("Super admin login failed", zap.String("username", username))
		return err
	}
	m.mu.Lock()
	m.superActive = true
	m.mu.Unlock()
	m.log.Info("Super admin logged in", zap.String("username", username))
	return nil
}

// SuperLogout clears the operator session. Idempotent.
func (m *Manager) SuperLogout() {
	m.mu.Lock()
	m.superActive = false
	m.mu.Unlock()
}

// IsSuperLoggedIn reports whether the operator session is active.
func (m *Manager) IsSuperLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.superActive
}

// ChangeSuperPassword rotates the operator credential.
func (m *Manager) ChangeSuperPassword(current, newPassword string) error {
	return m.store.ChangeSuperPassword(current, newPassword)
}

// Scoped returns a collection accessor bound to this session context.
func (m *Manager) Scoped() *Accessor {
	return &Accessor{sessions: m, store: m.store}
}

// Directory exposes the underlying tenant directory for operator-level
// school management.
func (m *Manager) Directory() *store.Store {
	return m.store
}
