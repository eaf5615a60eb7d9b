package api

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/platform/logger"
	"github.com/greenrise/greenrise-api/internal/service"
)

const (
	// ProfileImageField is the multipart part carrying the profile image.
	ProfileImageField = "profileImage"

	// multipartMemory is how much of a multipart body is kept in memory
	// before spilling to temporary files.
	multipartMemory = 1 << 20

	// multipartOverhead allows room for the text fields and boundaries on
	// top of the image size limit.
	multipartOverhead = 1 << 20
)

// UserHandler serves the /user routes.
type UserHandler struct {
	users          service.UserService
	validator      *validator.Validate
	maxUploadBytes int64
}

// NewUserHandler creates a UserHandler. maxUploadBytes bounds profile images.
func NewUserHandler(users service.UserService, maxUploadBytes int64) *UserHandler {
	return &UserHandler{
		users:          users,
		validator:      newValidator(),
		maxUploadBytes: maxUploadBytes,
	}
}

// ListUsers handles GET /user.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UsersResponse{Users: emptyIfNil(users)})
}

// CreateUser handles POST /user. The body is either JSON or
// multipart/form-data with an optional profileImage part.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if isMultipart(r) {
		h.createFromMultipart(w, r)
		return
	}

	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		log.Debug("invalid registration request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	h.register(w, r, req, nil)
}

func (h *UserHandler) createFromMultipart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			HandleAPIError(w, r, imagestore.ErrTooLarge, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := CreateUserRequest{
		Firstname:   r.FormValue("firstname"),
		Lastname:    r.FormValue("lastname"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Password:    r.FormValue("password"),
		Gender:      r.FormValue("gender"),
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	file, header, err := r.FormFile(ProfileImageField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		h.register(w, r, req, nil)
		return
	case err != nil:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}
	defer func() { _ = file.Close() }()

	img, err := imagestore.Prepare(file, header.Filename, header.Header.Get("Content-Type"), header.Size, h.maxUploadBytes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.register(w, r, req, img)
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request, req CreateUserRequest, img *imagestore.Image) {
	user, err := h.users.Register(r.Context(), req.Params(), img)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// GetUser handles GET /user/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}

// UpdateUser handles PUT /user/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// DeleteUser handles DELETE /user/{id}. Missing users still get 204.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /user/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Email is required", err)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, MsgInternalError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User: LoginUser{
			ID:        result.User.ID,
			Firstname: result.User.Firstname,
			Email:     result.User.Email,
		},
	})
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
