package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/service"
)

// HortalicaHandler serves the /hortalicas routes. Every route sits behind
// the auth middleware.
type HortalicaHandler struct {
	hortalicas service.HortalicaService
	validator  *validator.Validate
}

// NewHortalicaHandler creates a HortalicaHandler.
func NewHortalicaHandler(hortalicas service.HortalicaService) *HortalicaHandler {
	return &HortalicaHandler{
		hortalicas: hortalicas,
		validator:  newValidator(),
	}
}

// ListHortalicas handles GET /hortalicas.
func (h *HortalicaHandler) ListHortalicas(w http.ResponseWriter, r *http.Request) {
	list, err := h.hortalicas.ListHortalicas(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HortalicasResponse{Hortalicas: emptyIfNil(list)})
}

// CreateHortalica handles POST /hortalicas. The planting is owned by the
// authenticated user.
func (h *HortalicaHandler) CreateHortalica(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req HortalicaRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.hortalicas.CreateHortalica(r.Context(), userID, req.Params())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, HortalicaResponse{
		Message:   "Hortalica created successfully",
		Hortalica: created,
	})
}

// GetHortalica handles GET /hortalicas/{id}.
func (h *HortalicaHandler) GetHortalica(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	found, err := h.hortalicas.GetHortalica(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HortalicaResponse{Hortalica: found})
}

// UpdateHortalica handles PUT /hortalicas/{id}.
func (h *HortalicaHandler) UpdateHortalica(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateHortalicaRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}

	updated, err := h.hortalicas.UpdateHortalica(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HortalicaResponse{
		Message:   "Hortalica updated successfully",
		Hortalica: updated,
	})
}

// DeleteHortalica handles DELETE /hortalicas/{id}. Missing plantings still
// get 204.
func (h *HortalicaHandler) DeleteHortalica(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.hortalicas.DeleteHortalica(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
