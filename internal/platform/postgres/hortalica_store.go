package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/platform/logger"
	"github.com/greenrise/greenrise-api/internal/redact"
	"github.com/greenrise/greenrise-api/internal/store"
)

const hortalicaColumns = `id, nome_hortalica, tipo_hortalica, tempo_estimado, tempo_real,
	fertilizantes, nivel_agua, user_id, created_at, updated_at`

// PostgresHortalicaStore implements store.HortalicaStore on PostgreSQL.
// Fertilizer names are kept in a JSONB array column.
type PostgresHortalicaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHortalicaStore creates a planting store over a pool or transaction.
func NewPostgresHortalicaStore(db store.DBTX, logger *slog.Logger) *PostgresHortalicaStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresHortalicaStore{
		db:     db,
		logger: logger.With(slog.String("component", "hortalica_store")),
	}
}

var _ store.HortalicaStore = (*PostgresHortalicaStore)(nil)

// WithTx implements store.HortalicaStore.WithTx.
func (s *PostgresHortalicaStore) WithTx(tx *sql.Tx) store.HortalicaStore {
	return &PostgresHortalicaStore{db: tx, logger: s.logger}
}

// Create implements store.HortalicaStore.Create.
func (s *PostgresHortalicaStore) Create(ctx context.Context, h *domain.Hortalica) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := h.Validate(); err != nil {
		log.Warn("hortalica validation failed during create",
			slog.String("error", err.Error()),
			slog.String("hortalica_id", h.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	fertilizers, err := encodeFertilizers(h.Fertilizers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hortalicas (` + hortalicaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		h.ID,
		h.Name,
		h.Type,
		h.EstimatedDays,
		h.ActualDays,
		fertilizers,
		h.WaterLevel,
		h.UserID,
		h.CreatedAt,
		h.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create hortalica",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", h.ID.String()),
			slog.String("user_id", h.UserID.String()))
		return store.NewStoreError("hortalica", "create", "insert failed", MapError(err))
	}

	log.Info("hortalica created",
		slog.String("hortalica_id", h.ID.String()),
		slog.String("user_id", h.UserID.String()))
	return nil
}

// GetByID implements store.HortalicaStore.GetByID.
func (s *PostgresHortalicaStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + hortalicaColumns + ` FROM hortalicas WHERE id = $1`
	h, err := scanHortalica(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("hortalica not found", slog.String("hortalica_id", id.String()))
			return nil, store.ErrHortalicaNotFound
		}
		log.Error("failed to get hortalica by ID",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", id.String()))
		return nil, store.NewStoreError("hortalica", "get", "query failed", err)
	}
	return h, nil
}

// List implements store.HortalicaStore.List.
func (s *PostgresHortalicaStore) List(ctx context.Context) ([]*domain.Hortalica, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + hortalicaColumns + ` FROM hortalicas ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list hortalicas", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("hortalica", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	hortalicas := make([]*domain.Hortalica, 0)
	for rows.Next() {
		h, err := scanHortalica(rows)
		if err != nil {
			log.Error("failed to scan hortalica row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("hortalica", "list", "scan failed", err)
		}
		hortalicas = append(hortalicas, h)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating hortalica rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("hortalica", "list", "iteration failed", err)
	}

	log.Debug("listed hortalicas", slog.Int("count", len(hortalicas)))
	return hortalicas, nil
}

// Update implements store.HortalicaStore.Update. The owner and creation
// time are never changed.
func (s *PostgresHortalicaStore) Update(ctx context.Context, h *domain.Hortalica) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := h.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	fertilizers, err := encodeFertilizers(h.Fertilizers)
	if err != nil {
		return err
	}

	query := `
		UPDATE hortalicas
		SET nome_hortalica = $1, tipo_hortalica = $2, tempo_estimado = $3, tempo_real = $4,
			fertilizantes = $5, nivel_agua = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		h.Name,
		h.Type,
		h.EstimatedDays,
		h.ActualDays,
		fertilizers,
		h.WaterLevel,
		h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		log.Error("failed to update hortalica",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", h.ID.String()))
		return store.NewStoreError("hortalica", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrHortalicaNotFound); err != nil {
		return err
	}

	log.Info("hortalica updated", slog.String("hortalica_id", h.ID.String()))
	return nil
}

// Delete implements store.HortalicaStore.Delete.
func (s *PostgresHortalicaStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM hortalicas WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete hortalica",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", id.String()))
		return store.NewStoreError("hortalica", "delete", "delete failed", err)
	}

	if err := CheckRowsAffected(result, store.ErrHortalicaNotFound); err != nil {
		return err
	}

	log.Info("hortalica deleted", slog.String("hortalica_id", id.String()))
	return nil
}

func encodeFertilizers(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to encode fertilizers: %w", err)
	}
	return string(b), nil
}

func scanHortalica(row rowScanner) (*domain.Hortalica, error) {
	var (
		h           domain.Hortalica
		estimated   sql.NullInt64
		actual      sql.NullInt64
		waterLevel  sql.NullInt64
		fertilizers []byte
	)
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Type,
		&estimated,
		&actual,
		&fertilizers,
		&waterLevel,
		&h.UserID,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.EstimatedDays = nullIntPtr(estimated)
	h.ActualDays = nullIntPtr(actual)
	h.WaterLevel = nullIntPtr(waterLevel)

	h.Fertilizers = []string{}
	if len(fertilizers) > 0 {
		if err := json.Unmarshal(fertilizers, &h.Fertilizers); err != nil {
			return nil, fmt.Errorf("failed to decode fertilizers: %w", err)
		}
		if h.Fertilizers == nil {
			h.Fertilizers = []string{}
		}
	}
	return &h, nil
}

func nullIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
