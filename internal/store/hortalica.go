package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
)

// HortalicaStore defines the interface for planting persistence.
type HortalicaStore interface {
	// Create saves a new planting.
	Create(ctx context.Context, h *domain.Hortalica) error

	// GetByID retrieves a planting by ID.
	// Returns ErrHortalicaNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error)

	// List returns every planting ordered by creation time.
	List(ctx context.Context) ([]*domain.Hortalica, error)

	// Update replaces the mutable fields of a planting.
	// Returns ErrHortalicaNotFound if it does not exist.
	Update(ctx context.Context, h *domain.Hortalica) error

	// Delete removes a planting. Returns ErrHortalicaNotFound if nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a HortalicaStore bound to the given transaction.
	WithTx(tx *sql.Tx) HortalicaStore
}
