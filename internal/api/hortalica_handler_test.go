package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
	"github.com/greenrise/greenrise-api/internal/mocks"
	"github.com/greenrise/greenrise-api/internal/platform/logger"
	"github.com/greenrise/greenrise-api/internal/service"
	"github.com/greenrise/greenrise-api/internal/service/auth"
	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBearer = "Bearer valid-token"

func authedJWT(userID uuid.UUID) *mocks.MockJWTService {
	return &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			if token != "valid-token" {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: userID, Email: "ana@example.com"}, nil
		},
	}
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": testBearer}
}

func TestHortalicaRoutesRequireToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/hortalicas"},
		{http.MethodPost, "/hortalicas"},
		{http.MethodGet, "/hortalicas/" + uuid.NewString()},
		{http.MethodPut, "/hortalicas/" + uuid.NewString()},
		{http.MethodDelete, "/hortalicas/" + uuid.NewString()},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			hortalicas := &mocks.MockHortalicaService{}
			router := newTestRouter(&mocks.MockUserService{}, hortalicas, authedJWT(uuid.New()))

			rr := doRequest(t, router, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "No token provided", decodeError(t, rr))

			rr = doRequest(t, router, rt.method, rt.path, "", map[string]string{"Authorization": "Bearer forged"})
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Invalid token", decodeError(t, rr))

			assert.Empty(t, hortalicas.Calls)
		})
	}
}

func TestCreateHortalicaUsesTokenOwner(t *testing.T) {
	owner := uuid.New()
	var gotOwner uuid.UUID
	var gotParams domain.HortalicaParams
	hortalicas := &mocks.MockHortalicaService{
		CreateHortalicaFn: func(_ context.Context, userID uuid.UUID, p domain.HortalicaParams) (*domain.Hortalica, error) {
			gotOwner = userID
			gotParams = p
			return &domain.Hortalica{ID: uuid.New(), UserID: userID, Name: p.Name, Type: p.Type}, nil
		},
	}
	router := newTestRouter(&mocks.MockUserService{}, hortalicas, authedJWT(owner))

	body := `{"nome_hortalica":"Alface","tipo_hortalica":"folhosa","tempo_estimado":45,
		"fertilizantes":["húmus"],"nivel_agua":60,"user":"` + uuid.NewString() + `"}`
	rr := doRequest(t, router, http.MethodPost, "/hortalicas", body, authHeader())

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, owner, gotOwner, "owner comes from the token, not the body")
	assert.Equal(t, "Alface", gotParams.Name)
	require.NotNil(t, gotParams.WaterLevel)
	assert.Equal(t, 60, *gotParams.WaterLevel)

	var resp HortalicaResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Hortalica created successfully", resp.Message)
	assert.Equal(t, owner, resp.Hortalica.UserID)
}

func TestCreateHortalicaRequestErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantMessage: MsgInvalidRequestFormat},
		{name: "missing name", body: `{"tipo_hortalica":"fruto"}`, wantStatus: http.StatusBadRequest, wantMessage: "Invalid nome_hortalica: required field"},
		{
			name:        "owner deleted",
			body:        `{"nome_hortalica":"Tomate","tipo_hortalica":"fruto"}`,
			serviceErr:  service.ErrOwnerNotFound,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Owner user does not exist",
		},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			hortalicas := &mocks.MockHortalicaService{
				CreateHortalicaFn: func(context.Context, uuid.UUID, domain.HortalicaParams) (*domain.Hortalica, error) {
					return nil, tc.serviceErr
				},
			}
			router := newTestRouter(&mocks.MockUserService{}, hortalicas, authedJWT(uuid.New()))

			rr := doRequest(t, router, http.MethodPost, "/hortalicas", tc.body, authHeader())

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMessage, decodeError(t, rr))
		})
	}
}

// Runs the real service against mock stores so an out-of-range water level
// is rejected end to end without reaching the store.
func TestCreateHortalicaWaterLevelOutOfRange(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	hortalicaStore := &mocks.MockHortalicaStore{}
	userStore := &mocks.MockUserStore{}
	_, log := logger.SetupTestLogger(t)
	svc, err := service.NewHortalicaService(hortalicaStore, userStore, db, log)
	require.NoError(t, err)

	router := newTestRouter(&mocks.MockUserService{}, svc, authedJWT(uuid.New()))

	for _, level := range []int{150, -1} {
		body, err := json.Marshal(map[string]any{
			"nome_hortalica": "Tomate",
			"tipo_hortalica": "fruto",
			"nivel_agua":     level,
		})
		require.NoError(t, err)

		rr := doRequest(t, router, http.MethodPost, "/hortalicas", string(body), authHeader())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "nivel_agua")
	}

	hortalicaStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGetListUpdateHortalica(t *testing.T) {
	existing := &domain.Hortalica{ID: uuid.New(), UserID: uuid.New(), Name: "Alface", Type: "folhosa"}
	var gotPatch domain.HortalicaPatch
	hortalicas := &mocks.MockHortalicaService{
		ListHortalicasFn: func(context.Context) ([]*domain.Hortalica, error) {
			return []*domain.Hortalica{existing}, nil
		},
		GetHortalicaFn: func(_ context.Context, id uuid.UUID) (*domain.Hortalica, error) {
			if id == existing.ID {
				return existing, nil
			}
			return nil, store.ErrHortalicaNotFound
		},
		UpdateHortalicaFn: func(_ context.Context, id uuid.UUID, patch domain.HortalicaPatch) (*domain.Hortalica, error) {
			if id != existing.ID {
				return nil, store.ErrHortalicaNotFound
			}
			gotPatch = patch
			return existing, nil
		},
	}
	router := newTestRouter(&mocks.MockUserService{}, hortalicas, authedJWT(uuid.New()))

	rr := doRequest(t, router, http.MethodGet, "/hortalicas", "", authHeader())
	require.Equal(t, http.StatusOK, rr.Code)
	var list HortalicasResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Hortalicas, 1)

	rr = doRequest(t, router, http.MethodGet, "/hortalicas/"+existing.ID.String(), "", authHeader())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"nome_hortalica":"Alface"`)

	rr = doRequest(t, router, http.MethodGet, "/hortalicas/"+uuid.NewString(), "", authHeader())
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Hortalica not found", decodeError(t, rr))

	rr = doRequest(t, router, http.MethodPut, "/hortalicas/"+existing.ID.String(), `{"tempo_real":50}`, authHeader())
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotPatch.ActualDays)
	assert.Equal(t, 50, *gotPatch.ActualDays)
	assert.Nil(t, gotPatch.WaterLevel)
	assert.Contains(t, rr.Body.String(), "Hortalica updated successfully")

	rr = doRequest(t, router, http.MethodPut, "/hortalicas/"+uuid.NewString(), `{"tempo_real":50}`, authHeader())
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/hortalicas/42", "", authHeader())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, MsgInvalidID, decodeError(t, rr))
}

func TestDeleteHortalica(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantCalled bool
	}{
		{name: "existing or missing", id: uuid.NewString(), wantStatus: http.StatusNoContent, wantCalled: true},
		{name: "malformed id", id: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			hortalicas := &mocks.MockHortalicaService{}
			router := newTestRouter(&mocks.MockUserService{}, hortalicas, authedJWT(uuid.New()))

			rr := doRequest(t, router, http.MethodDelete, "/hortalicas/"+tc.id, "", authHeader())

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantCalled, len(hortalicas.Calls) == 1)
		})
	}
}

// Durations that overflow the INTEGER columns are rejected as bad input
// before any store call.
func TestCreateHortalicaDurationOverflow(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	hortalicaStore := &mocks.MockHortalicaStore{}
	userStore := &mocks.MockUserStore{}
	_, log := logger.SetupTestLogger(t)
	svc, err := service.NewHortalicaService(hortalicaStore, userStore, db, log)
	require.NoError(t, err)

	router := newTestRouter(&mocks.MockUserService{}, svc, authedJWT(uuid.New()))

	for _, field := range []string{"tempo_estimado", "tempo_real"} {
		body := `{"nome_hortalica":"Tomate","tipo_hortalica":"fruto","` + field + `":3000000000}`

		rr := doRequest(t, router, http.MethodPost, "/hortalicas", body, authHeader())
		assert.Equal(t, http.StatusBadRequest, rr.Code, field)
		assert.Contains(t, decodeError(t, rr), field)
	}

	hortalicaStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
