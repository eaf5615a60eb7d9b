//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/platform/postgres"
	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/greenrise/greenrise-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoresAgainstPostgres(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	users := postgres.NewPostgresUserStore(db, nil)
	hortalicas := postgres.NewPostgresHortalicaStore(db, nil)

	user, err := domain.NewUser(domain.UserParams{
		Firstname:   "Maria",
		Lastname:    "Silva",
		Email:       "maria@example.com",
		PhoneNumber: "11987654321",
		Password:    "secret123",
		Gender:      domain.GenderFemale,
	})
	require.NoError(t, err)
	user.HashedPassword = "$2a$12$placeholderplaceholderplaceholderplaceholderplacehol"
	user.Password = ""
	require.NoError(t, users.Create(ctx, user))

	t.Run("email uniqueness", func(t *testing.T) {
		dup := *user
		dup.ID = uuid.New()
		assert.ErrorIs(t, users.Create(ctx, &dup), store.ErrEmailExists)
	})

	t.Run("lookup by email", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	level := 40
	h, err := domain.NewHortalica(user.ID, domain.HortalicaParams{
		Name:        "Alface",
		Type:        "folhosa",
		Fertilizers: []string{"NPK"},
		WaterLevel:  &level,
	})
	require.NoError(t, err)
	require.NoError(t, hortalicas.Create(ctx, h))

	t.Run("planting round trip", func(t *testing.T) {
		got, err := hortalicas.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"NPK"}, got.Fertilizers)
		assert.Equal(t, 40, *got.WaterLevel)
		assert.Nil(t, got.EstimatedDays)
	})

	t.Run("deleting the owner keeps plantings", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, user.ID))
		got, err := hortalicas.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
	})

	t.Run("transaction rollback discards writes", func(t *testing.T) {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			other, err := domain.NewHortalica(uuid.New(), domain.HortalicaParams{Name: "Couve", Type: "folhosa"})
			require.NoError(t, err)
			require.NoError(t, hortalicas.WithTx(tx).Create(ctx, other))
		})
		list, err := hortalicas.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		require.NoError(t, testdb.ResetDatabase(ctx, db))
		require.NoError(t, testdb.ResetDatabase(ctx, db))
		list, err := hortalicas.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
