package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Water level bounds, in percent.
const (
	MinWaterLevel = 0
	MaxWaterLevel = 100
)

// MaxDurationDays is the largest tempo_estimado or tempo_real that can be
// stored (INTEGER column).
const MaxDurationDays = math.MaxInt32

// Hortalica validation errors
var (
	ErrEmptyHortalicaID   = errors.New("hortalica ID cannot be empty")
	ErrEmptyHortalicaName = errors.New("nome_hortalica cannot be empty")
	ErrEmptyHortalicaType = errors.New("tipo_hortalica cannot be empty")
	ErrEmptyOwnerID       = errors.New("owning user ID cannot be empty")
)

// Hortalica is a tracked vegetable planting owned by a user.
// Durations are expressed in days.
type Hortalica struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"nome_hortalica"`
	Type          string    `json:"tipo_hortalica"`
	EstimatedDays *int      `json:"tempo_estimado"`
	ActualDays    *int      `json:"tempo_real"`
	Fertilizers   []string  `json:"fertilizantes"`
	WaterLevel    *int      `json:"nivel_agua"`
	UserID        uuid.UUID `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HortalicaParams carries the fields supplied when a planting is created.
type HortalicaParams struct {
	Name          string
	Type          string
	EstimatedDays *int
	ActualDays    *int
	Fertilizers   []string
	WaterLevel    *int
}

// HortalicaPatch holds a partial update. Nil fields are left unchanged, so a
// JSON null cannot clear an optional field once it is set. A non-nil
// Fertilizers pointer replaces the whole list.
type HortalicaPatch struct {
	Name          *string
	Type          *string
	EstimatedDays *int
	ActualDays    *int
	Fertilizers   *[]string
	WaterLevel    *int
}

// NewHortalica creates a planting owned by userID.
// Water levels outside [0,100] are rejected, never clamped.
func NewHortalica(userID uuid.UUID, p HortalicaParams) (*Hortalica, error) {
	now := time.Now().UTC()
	h := &Hortalica{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(p.Name),
		Type:          strings.TrimSpace(p.Type),
		EstimatedDays: p.EstimatedDays,
		ActualDays:    p.ActualDays,
		Fertilizers:   CleanFertilizers(p.Fertilizers),
		WaterLevel:    p.WaterLevel,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks that the planting has valid data.
func (h *Hortalica) Validate() error {
	if h.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyHortalicaID)
	}
	if h.UserID == uuid.Nil {
		return NewValidationError("user", "is required", ErrEmptyOwnerID)
	}
	if h.Name == "" {
		return NewValidationError("nome_hortalica", "is required", ErrEmptyHortalicaName)
	}
	if h.Type == "" {
		return NewValidationError("tipo_hortalica", "is required", ErrEmptyHortalicaType)
	}
	if err := validateDuration("tempo_estimado", h.EstimatedDays); err != nil {
		return err
	}
	if err := validateDuration("tempo_real", h.ActualDays); err != nil {
		return err
	}
	if h.WaterLevel != nil && (*h.WaterLevel < MinWaterLevel || *h.WaterLevel > MaxWaterLevel) {
		return NewValidationError("nivel_agua", "must be between 0 and 100", ErrWaterLevelOutOfRange)
	}
	return nil
}

// Apply merges a partial update into the planting and re-validates it.
// On error the planting is left unchanged.
func (h *Hortalica) Apply(p HortalicaPatch) error {
	updated := *h

	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		updated.Type = strings.TrimSpace(*p.Type)
	}
	if p.EstimatedDays != nil {
		updated.EstimatedDays = intPtr(*p.EstimatedDays)
	}
	if p.ActualDays != nil {
		updated.ActualDays = intPtr(*p.ActualDays)
	}
	if p.WaterLevel != nil {
		updated.WaterLevel = intPtr(*p.WaterLevel)
	}
	if p.Fertilizers != nil {
		updated.Fertilizers = CleanFertilizers(*p.Fertilizers)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*h = updated
	return nil
}

func validateDuration(field string, days *int) error {
	switch {
	case days == nil:
		return nil
	case *days < 0:
		return NewValidationError(field, "cannot be negative", ErrNegativeDuration)
	case *days > MaxDurationDays:
		return NewValidationError(field, "must be at most 2147483647", ErrDurationTooLarge)
	}
	return nil
}

// CleanFertilizers trims each name and drops blanks. The result is never nil
// so that it serializes as an empty JSON array.
func CleanFertilizers(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return cleaned
}

func intPtr(v int) *int {
	return &v
}
