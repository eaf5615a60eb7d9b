package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
)

// newValidator reports field names by their JSON tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateUserRequest is the registration payload. Format checks beyond
// presence happen in the domain after normalization.
type CreateUserRequest struct {
	Firstname   string `json:"firstname"   validate:"required"`
	Lastname    string `json:"lastname"    validate:"required"`
	Email       string `json:"email"       validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password"    validate:"required,min=6,max=72"`
	Gender      string `json:"gender"      validate:"required,oneof=masculino feminino outro"`
}

// Params converts the request to domain input.
func (r CreateUserRequest) Params() domain.UserParams {
	return domain.UserParams{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Password:    r.Password,
		Gender:      domain.Gender(r.Gender),
	}
}

// UpdateUserRequest is a partial user update; omitted fields are unchanged.
type UpdateUserRequest struct {
	Firstname    *string `json:"firstname"`
	Lastname     *string `json:"lastname"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phoneNumber"`
	Password     *string `json:"password"     validate:"omitempty,min=6,max=72"`
	Gender       *string `json:"gender"       validate:"omitempty,oneof=masculino feminino outro"`
	ProfileImage *string `json:"profileImage"`
}

// Patch converts the request to a domain patch.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	p := domain.UserPatch{
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		Password:     r.Password,
		ProfileImage: r.ProfileImage,
	}
	if r.Gender != nil {
		g := domain.Gender(*r.Gender)
		p.Gender = &g
	}
	return p
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the identity summary returned on login.
type LoginUser struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Email     string    `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// UserResponse wraps a single user, with an optional message.
type UserResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []*domain.User `json:"users"`
}

// HortalicaRequest is the payload for creating a planting. The owner comes
// from the bearer token, never from the body.
type HortalicaRequest struct {
	Name          string   `json:"nome_hortalica" validate:"required"`
	Type          string   `json:"tipo_hortalica" validate:"required"`
	EstimatedDays *int     `json:"tempo_estimado"`
	ActualDays    *int     `json:"tempo_real"`
	Fertilizers   []string `json:"fertilizantes"`
	WaterLevel    *int     `json:"nivel_agua"`
}

// Params converts the request to domain input.
func (r HortalicaRequest) Params() domain.HortalicaParams {
	return domain.HortalicaParams{
		Name:          r.Name,
		Type:          r.Type,
		EstimatedDays: r.EstimatedDays,
		ActualDays:    r.ActualDays,
		Fertilizers:   r.Fertilizers,
		WaterLevel:    r.WaterLevel,
	}
}

// UpdateHortalicaRequest is a partial planting update.
type UpdateHortalicaRequest struct {
	Name          *string   `json:"nome_hortalica"`
	Type          *string   `json:"tipo_hortalica"`
	EstimatedDays *int      `json:"tempo_estimado"`
	ActualDays    *int      `json:"tempo_real"`
	Fertilizers   *[]string `json:"fertilizantes"`
	WaterLevel    *int      `json:"nivel_agua"`
}

// Patch converts the request to a domain patch.
func (r UpdateHortalicaRequest) Patch() domain.HortalicaPatch {
	return domain.HortalicaPatch{
		Name:          r.Name,
		Type:          r.Type,
		EstimatedDays: r.EstimatedDays,
		ActualDays:    r.ActualDays,
		Fertilizers:   r.Fertilizers,
		WaterLevel:    r.WaterLevel,
	}
}

// HortalicaResponse wraps a single planting, with an optional message.
type HortalicaResponse struct {
	Message   string            `json:"message,omitempty"`
	Hortalica *domain.Hortalica `json:"hortalica"`
}

// HortalicasResponse wraps the planting list.
type HortalicasResponse struct {
	Hortalicas []*domain.Hortalica `json:"hortalicas"`
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Message    string              `json:"message"`
	Users      []*domain.User      `json:"users"`
	Hortalicas []*domain.Hortalica `json:"hortalicas"`
}
