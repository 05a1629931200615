package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(context.Background(), DefaultConfig(":memory:"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestUserRepository_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := domain.NewUser("alice", "secret-password")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Password, got.Password)

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = repo.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewUser("alice", "one")))

	err := repo.Create(ctx, domain.NewUser("alice", "two"))
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestAPIKeyRepository_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	keys := NewAPIKeyRepository(db)
	ctx := context.Background()

	user := domain.NewUser("alice", "secret-password")
	require.NoError(t, users.Create(ctx, user))

	key := domain.NewAPIKey(user.ID, "deadbeefdeadbeefdeadbeefdeadbeef", 2*time.Hour)
	require.NoError(t, keys.Create(ctx, key))

	got, err := keys.GetByKey(ctx, key.Key)
	require.NoError(t, err)
	require.Equal(t, key.ID, got.ID)
	require.True(t, got.IsActive)
	require.WithinDuration(t, key.ExpiresAt, got.ExpiresAt, time.Second)

	count, err := keys.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, keys.UpdateIsActive(ctx, key.ID, false))

	got, err = keys.GetByID(ctx, key.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	list, err := keys.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAPIKeyRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	keys := NewAPIKeyRepository(db)
	ctx := context.Background()

	_, err := keys.GetByKey(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = keys.UpdateIsActive(ctx, uuid.New(), true)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoRepository_OwnerScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	todos := NewTodoRepository(db)
	ctx := context.Background()

	alice := domain.NewUser("alice", "secret-password")
	bob := domain.NewUser("bob", "other-password")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	todo := domain.NewTodo(alice.ID, "write report", "numbers", domain.DifficultyMedium)
	require.NoError(t, todos.Create(ctx, todo))

	_, err := todos.GetByID(ctx, todo.ID, alice.ID)
	require.NoError(t, err)

	_, err = todos.GetByID(ctx, todo.ID, bob.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = todos.Delete(ctx, todo.ID, bob.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	todo.IsDone = true
	require.NoError(t, todos.Update(ctx, todo))

	got, err := todos.GetByID(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, got.IsDone)

	require.NoError(t, todos.Delete(ctx, todo.ID, alice.ID))

	list, err := todos.ListByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}
