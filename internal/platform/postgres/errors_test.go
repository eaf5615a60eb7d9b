package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/greenrise/greenrise-api/internal/platform/postgres"
	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: "users_email_key",
	}
}

type fakeResult struct {
	rowsAffected int64
	err          error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, r.err }
func (r fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name      string
		err       error
		wantIs    error
		wantSame  bool
		wantNil   bool
		wantInMsg string
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", newPgError("23505")), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), wantIs: store.ErrInvalidEntity, wantInMsg: "foreign key"},
		{name: "check violation", err: newPgError("23514"), wantIs: store.ErrInvalidEntity, wantInMsg: "users_email_key"},
		{name: "not null violation", err: newPgError("23502"), wantIs: store.ErrInvalidEntity, wantInMsg: "email"},
		{name: "unmapped pg code", err: newPgError("42P01"), wantSame: true},
		{name: "plain error", err: plain, wantSame: true},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tc.err)

			switch {
			case tc.wantNil:
				assert.NoError(t, got)
			case tc.wantSame:
				assert.Same(t, tc.err, got)
			default:
				require.Error(t, got)
				assert.ErrorIs(t, got, tc.wantIs)
				if tc.wantInMsg != "" {
					assert.Contains(t, got.Error(), tc.wantInMsg)
				}
			}
		})
	}
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23514")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("23505")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(fakeResult{rowsAffected: 1}, store.ErrUserNotFound))
	assert.ErrorIs(t, postgres.CheckRowsAffected(fakeResult{}, store.ErrUserNotFound), store.ErrUserNotFound)
	assert.ErrorIs(t, postgres.CheckRowsAffected(fakeResult{}, nil), store.ErrNotFound)

	err := postgres.CheckRowsAffected(fakeResult{err: errors.New("driver")}, nil)
	assert.ErrorContains(t, err, "failed to get rows affected")

	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
}
