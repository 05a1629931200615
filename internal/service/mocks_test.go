package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[string]*domain.User // keyed by username
	createErr error
	getErr    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[username]; exists {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	_, exists := m.users[username]
	return exists, nil
}

// MockAPIKeyRepository is a mock implementation of repository.APIKeyRepository.
type MockAPIKeyRepository struct {
	keys      map[uuid.UUID]*domain.APIKey // keyed by record ID
	createErr error
	getErr    error
	updateErr error
}

func NewMockAPIKeyRepository() *MockAPIKeyRepository {
	return &MockAPIKeyRepository{
		keys: make(map[uuid.UUID]*domain.APIKey),
	}
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.keys[key.ID] = key
	return nil
}

func (m *MockAPIKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if k, exists := m.keys[id]; exists {
		return k, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockAPIKeyRepository) GetByKey(ctx context.Context, token string) (*domain.APIKey, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, k := range m.keys {
		if k.Key == token {
			return k, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockAPIKeyRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var result []*domain.APIKey
	for _, k := range m.keys {
		if k.UserID == userID {
			result = append(result, k)
		}
	}
	return result, nil
}

func (m *MockAPIKeyRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	count := 0
	for _, k := range m.keys {
		if k.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockAPIKeyRepository) UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	k, exists := m.keys[id]
	if !exists {
		return repository.ErrNotFound
	}
	k.IsActive = isActive
	return nil
}

// MockTodoRepository is a mock implementation of repository.TodoRepository.
type MockTodoRepository struct {
	todos     map[uuid.UUID]*domain.Todo
	createErr error
	getErr    error
}

func NewMockTodoRepository() *MockTodoRepository {
	return &MockTodoRepository{
		todos: make(map[uuid.UUID]*domain.Todo),
	}
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.todos[todo.ID] = todo
	return nil
}

func (m *MockTodoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, exists := m.todos[id]; exists && t.UserID == userID {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockTodoRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var result []*domain.Todo
	for _, t := range m.todos {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	t, exists := m.todos[todo.ID]
	if !exists || t.UserID != todo.UserID {
		return repository.ErrNotFound
	}
	m.todos[todo.ID] = todo
	return nil
}

func (m *MockTodoRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	t, exists := m.todos[id]
	if !exists || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

// MockCache is a map-backed cache for tests. TTLs are recorded but not
// enforced.
type MockCache struct {
	entries map[string][]byte
	deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, exists := m.entries[key]; exists {
		return v, nil
	}
	return nil, repository.ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockCache) Close() error {
	return nil
}

// Interface checks for the mocks.
var (
	_ repository.UserRepository   = (*MockUserRepository)(nil)
	_ repository.APIKeyRepository = (*MockAPIKeyRepository)(nil)
	_ repository.TodoRepository   = (*MockTodoRepository)(nil)
	_ repository.Cache            = (*MockCache)(nil)
)
