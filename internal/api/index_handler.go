package api

import (
	"net/http"

	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/service"
)

// IndexHandler serves GET /, a combined dump of users and plantings.
type IndexHandler struct {
	users      service.UserService
	hortalicas service.HortalicaService
}

// NewIndexHandler creates an IndexHandler.
func NewIndexHandler(users service.UserService, hortalicas service.HortalicaService) *IndexHandler {
	return &IndexHandler{users: users, hortalicas: hortalicas}
}

// Index handles GET /.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	hortalicas, err := h.hortalicas.ListHortalicas(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IndexResponse{
		Message:    "Index route working",
		Users:      emptyIfNil(users),
		Hortalicas: emptyIfNil(hortalicas),
	})
}
