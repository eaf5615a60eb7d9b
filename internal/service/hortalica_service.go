package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/redact"
	"github.com/greenrise/greenrise-api/internal/store"
)

// HortalicaService manages plantings.
type HortalicaService interface {
	// CreateHortalica creates a planting owned by userID. Returns
	// ErrOwnerNotFound when no such user exists.
	CreateHortalica(ctx context.Context, userID uuid.UUID, params domain.HortalicaParams) (*domain.Hortalica, error)

	// ListHortalicas returns every planting.
	ListHortalicas(ctx context.Context) ([]*domain.Hortalica, error)

	// GetHortalica retrieves a planting by ID.
	GetHortalica(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error)

	// UpdateHortalica applies a partial update.
	UpdateHortalica(ctx context.Context, id uuid.UUID, patch domain.HortalicaPatch) (*domain.Hortalica, error)

	// DeleteHortalica removes a planting. Deleting a missing planting is not an error.
	DeleteHortalica(ctx context.Context, id uuid.UUID) error
}

// HortalicaServiceImpl implements HortalicaService.
type HortalicaServiceImpl struct {
	hortalicaStore store.HortalicaStore
	userStore      store.UserStore
	db             *sql.DB
	logger         *slog.Logger
}

// NewHortalicaService creates a HortalicaService.
func NewHortalicaService(
	hortalicaStore store.HortalicaStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) (*HortalicaServiceImpl, error) {
	switch {
	case hortalicaStore == nil:
		return nil, errors.New("hortalicaStore cannot be nil")
	case userStore == nil:
		return nil, errors.New("userStore cannot be nil")
	case db == nil:
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HortalicaServiceImpl{
		hortalicaStore: hortalicaStore,
		userStore:      userStore,
		db:             db,
		logger:         logger.With("component", "hortalica_service"),
	}, nil
}

var _ HortalicaService = (*HortalicaServiceImpl)(nil)

// CreateHortalica implements HortalicaService.CreateHortalica. The owner
// lookup and the insert are not atomic; a user deleted in between leaves an
// orphan, same as deleting the user afterwards would.
func (s *HortalicaServiceImpl) CreateHortalica(
	ctx context.Context,
	userID uuid.UUID,
	params domain.HortalicaParams,
) (*domain.Hortalica, error) {
	h, err := domain.NewHortalica(userID, params)
	if err != nil {
		s.logger.Debug("rejected planting", slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("planting for unknown owner", slog.String("user_id", userID.String()))
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("failed to look up planting owner",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("hortalica", "create", err)
	}

	if err := s.hortalicaStore.Create(ctx, h); err != nil {
		s.logger.Error("failed to save planting",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("hortalica", "create", err)
	}

	s.logger.Info("planting created",
		slog.String("hortalica_id", h.ID.String()),
		slog.String("user_id", userID.String()))
	return h, nil
}

// ListHortalicas implements HortalicaService.ListHortalicas.
func (s *HortalicaServiceImpl) ListHortalicas(ctx context.Context) ([]*domain.Hortalica, error) {
	list, err := s.hortalicaStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list plantings", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("hortalica", "list", err)
	}
	return list, nil
}

// GetHortalica implements HortalicaService.GetHortalica.
func (s *HortalicaServiceImpl) GetHortalica(ctx context.Context, id uuid.UUID) (*domain.Hortalica, error) {
	h, err := s.hortalicaStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrHortalicaNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve planting",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", id.String()))
		return nil, NewServiceError("hortalica", "get", err)
	}
	return h, nil
}

// UpdateHortalica implements HortalicaService.UpdateHortalica.
func (s *HortalicaServiceImpl) UpdateHortalica(
	ctx context.Context,
	id uuid.UUID,
	patch domain.HortalicaPatch,
) (*domain.Hortalica, error) {
	var updated *domain.Hortalica

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.hortalicaStore.WithTx(tx)

		h, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := h.Apply(patch); err != nil {
			return err
		}
		if err := txStore.Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) || errors.Is(err, store.ErrHortalicaNotFound) {
			s.logger.Debug("planting update rejected",
				slog.String("error", err.Error()),
				slog.String("hortalica_id", id.String()))
			return nil, err
		}
		s.logger.Error("failed to update planting",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", id.String()))
		return nil, NewServiceError("hortalica", "update", err)
	}

	s.logger.Info("planting updated", slog.String("hortalica_id", id.String()))
	return updated, nil
}

// DeleteHortalica implements HortalicaService.DeleteHortalica.
func (s *HortalicaServiceImpl) DeleteHortalica(ctx context.Context, id uuid.UUID) error {
	if err := s.hortalicaStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrHortalicaNotFound) {
			s.logger.Debug("delete of missing planting", slog.String("hortalica_id", id.String()))
			return nil
		}
		s.logger.Error("failed to delete planting",
			slog.String("error", redact.Error(err)),
			slog.String("hortalica_id", id.String()))
		return NewServiceError("hortalica", "delete", err)
	}

	s.logger.Info("planting deleted", slog.String("hortalica_id", id.String()))
	return nil
}
