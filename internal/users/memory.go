package users

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/accountd/accountd/internal/models"
)

// MemoryUserRepository is a map-backed UserRepository used in unit tests and
// as a fallback when no MongoDB is configured. The email check and the insert
// happen under one lock, so it gives the same single-winner guarantee the
// unique index provides in Mongo.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string // email -> id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[email]; taken {
		return nil, ErrEmailInUse
	}
	now := time.Now().UTC()
	u := &models.User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.byID[u.ID] = u
	m.byEmail[email] = u.ID
	return copyUser(u), nil
}

func (m *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return copyUser(m.byID[id]), nil
}

func (m *MemoryUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryUserRepository) DeleteByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

func (m *MemoryUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.byID))
	m.byID = make(map[string]*models.User)
	m.byEmail = make(map[string]string)
	return n, nil
}

func (m *MemoryUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}
