package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/api/middleware"
	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/mocks"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/service"
	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 64 * 1024

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// newTestRouter mounts the handlers the way the server does.
func newTestRouter(users service.UserService, hortalicas service.HortalicaService, jwt *mocks.MockJWTService) http.Handler {
	userHandler := NewUserHandler(users, testMaxUpload)
	hortalicaHandler := NewHortalicaHandler(hortalicas)
	authMiddleware := middleware.NewAuthMiddleware(jwt)

	r := chi.NewRouter()
	r.Get("/", NewIndexHandler(users, hortalicas).Index)
	r.Route("/user", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Post("/login", userHandler.Login)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
	r.Route("/hortalicas", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", hortalicaHandler.ListHortalicas)
		r.Post("/", hortalicaHandler.CreateHortalica)
		r.Get("/{id}", hortalicaHandler.GetHortalica)
		r.Put("/{id}", hortalicaHandler.UpdateHortalica)
		r.Delete("/{id}", hortalicaHandler.DeleteHortalica)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Firstname:      "Ana",
		Lastname:       "Souza",
		Email:          "ana@example.com",
		PhoneNumber:    "11999999999",
		HashedPassword: "$2a$12$secret-hash",
		Gender:         domain.GenderFemale,
		ProfileImage:   domain.DefaultProfileImage,
	}
}

const validUserJSON = `{
	"firstname": "Ana",
	"lastname": "Souza",
	"email": "Ana@Example.com",
	"phoneNumber": "11999999999",
	"password": "segredo",
	"gender": "feminino"
}`

func TestCreateUserJSON(t *testing.T) {
	var gotParams domain.UserParams
	users := &mocks.MockUserService{
		RegisterFn: func(_ context.Context, p domain.UserParams, img *imagestore.Image) (*domain.User, error) {
			gotParams = p
			assert.Nil(t, img)
			return sampleUser(), nil
		},
	}
	router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

	rr := doRequest(t, router, http.MethodPost, "/user", validUserJSON, nil)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Ana@Example.com", gotParams.Email, "normalization belongs to the domain")
	assert.Equal(t, domain.GenderFemale, gotParams.Gender)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "User created successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.NotContains(t, rr.Body.String(), "secret-hash")
}

func TestCreateUserErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		registerErr error
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{
			name:        "malformed json",
			body:        `{"firstname":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgInvalidRequestFormat,
		},
		{
			name:        "missing fields",
			body:        `{"firstname":"Ana"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid lastname: required field",
		},
		{
			name:        "duplicate email",
			body:        validUserJSON,
			registerErr: store.ErrEmailExists,
			wantStatus:  http.StatusConflict,
			wantMessage: "Email already exists",
			wantCalled:  true,
		},
		{
			name:        "domain rejects email format",
			body:        strings.Replace(validUserJSON, "Ana@Example.com", "not-an-email", 1),
			registerErr: domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "email has invalid format",
			wantCalled:  true,
		},
		{
			name:        "internal failure",
			body:        validUserJSON,
			registerErr: service.NewServiceError("user", "register", errors.New("tx aborted")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgInternalError,
			wantCalled:  true,
		},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				RegisterFn: func(context.Context, domain.UserParams, *imagestore.Image) (*domain.User, error) {
					return nil, tc.registerErr
				},
			}
			router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

			rr := doRequest(t, router, http.MethodPost, "/user", tc.body, nil)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMessage, decodeError(t, rr))
			assert.Equal(t, tc.wantCalled, len(users.Calls) == 1)
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="profileImage"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

var multipartFields = map[string]string{
	"firstname":   "Ana",
	"lastname":    "Souza",
	"email":       "ana@example.com",
	"phoneNumber": "11999999999",
	"password":    "segredo",
	"gender":      "feminino",
}

func TestCreateUserMultipart(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		file        []byte
		wantStatus  int
		wantImage   bool
		wantMessage string
	}{
		{
			name:        "png upload",
			filename:    "avatar.png",
			contentType: "image/png",
			file:        pngBytes,
			wantStatus:  http.StatusCreated,
			wantImage:   true,
		},
		{
			name:       "no file part uses default image",
			wantStatus: http.StatusCreated,
		},
		{
			name:        "text file rejected",
			filename:    "notes.txt",
			contentType: "text/plain",
			file:        []byte("hello"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Only image files are allowed",
		},
		{
			name:        "file over limit rejected",
			filename:    "huge.png",
			contentType: "image/png",
			file:        append(append([]byte{}, pngBytes...), make([]byte, testMaxUpload)...),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Image is too large",
		},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var gotImage *imagestore.Image
			users := &mocks.MockUserService{
				RegisterFn: func(_ context.Context, _ domain.UserParams, img *imagestore.Image) (*domain.User, error) {
					gotImage = img
					return sampleUser(), nil
				},
			}
			router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

			body, contentType := multipartBody(t, multipartFields, tc.filename, tc.contentType, tc.file)
			req := httptest.NewRequest(http.MethodPost, "/user", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, decodeError(t, rr))
				assert.Empty(t, users.Calls)
				return
			}
			if tc.wantImage {
				require.NotNil(t, gotImage)
				assert.Equal(t, "image/png", gotImage.ContentType)
				assert.True(t, strings.HasPrefix(gotImage.Name, "profile-"))
				assert.True(t, strings.HasSuffix(gotImage.Name, ".png"))
			} else {
				assert.Nil(t, gotImage)
			}
		})
	}
}

func TestListAndGetUsers(t *testing.T) {
	u := sampleUser()
	users := &mocks.MockUserService{
		ListUsersFn: func(context.Context) ([]*domain.User, error) { return nil, nil },
		GetUserFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id == u.ID {
				return u, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

	rr := doRequest(t, router, http.MethodGet, "/user", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"users":[]}`, rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/user/"+u.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), u.ID.String())

	rr = doRequest(t, router, http.MethodGet, "/user/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", decodeError(t, rr))

	rr = doRequest(t, router, http.MethodGet, "/user/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, MsgInvalidID, decodeError(t, rr))
}

func TestUpdateUser(t *testing.T) {
	u := sampleUser()
	var gotPatch domain.UserPatch
	users := &mocks.MockUserService{
		UpdateUserFn: func(_ context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
			if id != u.ID {
				return nil, store.ErrUserNotFound
			}
			gotPatch = patch
			return u, nil
		},
	}
	router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

	rr := doRequest(t, router, http.MethodPut, "/user/"+u.ID.String(), `{"password":"nova-senha"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotPatch.Password)
	assert.Equal(t, "nova-senha", *gotPatch.Password)
	assert.Nil(t, gotPatch.Firstname)
	assert.Contains(t, rr.Body.String(), "User updated successfully")

	rr = doRequest(t, router, http.MethodPut, "/user/"+uuid.NewString(), `{"firstname":"X"}`, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodPut, "/user/"+u.ID.String(), `{"password":"123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPut, "/user/bad-id", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Deleting is idempotent: 204 whether or not the record existed, 400 for a
// malformed id without touching the service, 500 on failure.
func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		serviceErr error
		wantStatus int
		wantCalled bool
	}{
		{name: "existing or missing", id: uuid.NewString(), wantStatus: http.StatusNoContent, wantCalled: true},
		{name: "malformed id", id: "123", wantStatus: http.StatusBadRequest},
		{
			name:       "store failure",
			id:         uuid.NewString(),
			serviceErr: service.NewServiceError("user", "delete", errors.New("conn reset")),
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				DeleteUserFn: func(context.Context, uuid.UUID) error { return tc.serviceErr },
			}
			router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

			rr := doRequest(t, router, http.MethodDelete, "/user/"+tc.id, "", nil)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantCalled, len(users.Calls) == 1)
			if tc.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	u := sampleUser()

	tests := []struct {
		name        string
		body        string
		loginErr    error
		wantStatus  int
		wantMessage string
	}{
		{name: "success", body: `{"email":"ana@example.com","password":"segredo"}`, wantStatus: http.StatusOK},
		{name: "missing email", body: `{"password":"segredo"}`, wantStatus: http.StatusBadRequest, wantMessage: "Email is required"},
		{name: "blank email", body: `{"email":"  ","password":"segredo"}`, wantStatus: http.StatusBadRequest, wantMessage: "Email is required"},
		{name: "malformed body", body: `not json`, wantStatus: http.StatusBadRequest, wantMessage: "Email is required"},
		{
			name:        "unknown email",
			body:        `{"email":"nobody@example.com","password":"segredo"}`,
			loginErr:    service.ErrEmailNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Email not found",
		},
		{
			name:        "wrong password",
			body:        `{"email":"ana@example.com","password":"errada"}`,
			loginErr:    service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				LoginFn: func(context.Context, string, string) (*service.LoginResult, error) {
					if tc.loginErr != nil {
						return nil, tc.loginErr
					}
					return &service.LoginResult{Token: "jwt-token", User: u}, nil
				},
			}
			router := newTestRouter(users, &mocks.MockHortalicaService{}, &mocks.MockJWTService{})

			rr := doRequest(t, router, http.MethodPost, "/user/login", tc.body, nil)
			require.Equal(t, tc.wantStatus, rr.Code)

			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, decodeError(t, rr))
				return
			}

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "jwt-token", resp.Token)
			assert.Equal(t, u.ID, resp.User.ID)
			assert.Equal(t, "Ana", resp.User.Firstname)
			assert.Equal(t, u.Email, resp.User.Email)
			assert.NotEmpty(t, resp.Message)
			assert.NotContains(t, rr.Body.String(), "secret-hash")
		})
	}
}
