package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/benefits-navigator/internal/db"
	"github.com/jonathan/benefits-navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer wires a full server against the in-memory store.
func setupTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	store := newFakeStore()
	s, err := newWithClient(store, Config{Port: 0})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s, store
}

// seedMember creates a user with the given org role and returns a bearer token.
func seedMember(t *testing.T, s *Server, store *fakeStore, orgID uuid.UUID, role string) (uuid.UUID, string) {
	t.Helper()
	userID, err := store.CreateUser(t.Context(), "Worker "+role, role+"-"+uuid.New().String()+"@example.com")
	require.NoError(t, err)
	store.addMember(orgID, userID, role)

	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)
	return userID, token
}

func doJSON(s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateRun_Narrative(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	userID, token := seedMember(t, s, store, orgID, "caseworker")

	w := doJSON(s, http.MethodPost, "/runs", token, types.RunRequest{
		OrgID:    orgID.String(),
		InputRaw: "I live alone and receive $914 monthly in SSDI. My rent is $650 and I pay for heating separately.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.RunID)
	require.NotNil(t, resp.Result)
	require.NotNil(t, resp.Result.Facts)
	assert.Equal(t, 1, resp.Result.Facts.HouseholdSize)
	require.NotNil(t, resp.Result.Facts.TotalMonthlyIncome)
	assert.Equal(t, 914, *resp.Result.Facts.TotalMonthlyIncome)
	assert.NotEmpty(t, resp.Result.Summary.LikelyEligible)
	require.NotNil(t, resp.Decision)

	// Run persisted under the caller's identity
	stored := store.runs[resp.RunID]
	require.NotNil(t, stored)
	assert.Equal(t, orgID, stored.OrgID)
	assert.Equal(t, userID, stored.CreatedBy)
	assert.Equal(t, "narrative", stored.InputMode)
	assert.Contains(t, stored.InputRaw, "disability")
}

func TestCreateRun_Unauthorized(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(s, http.MethodPost, "/runs", "", types.RunRequest{
		OrgID:    uuid.New().String(),
		InputRaw: "I live alone.",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRun_NotAMember(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	_, token := seedMember(t, s, store, orgID, "caseworker")

	otherOrg := uuid.New()
	w := doJSON(s, http.MethodPost, "/runs", token, types.RunRequest{
		OrgID:    otherOrg.String(),
		InputRaw: "I live alone.",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access to org denied")
}

func TestCreateRun_BadRequests(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	_, token := seedMember(t, s, store, orgID, "caseworker")

	t.Run("empty narrative", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/runs", token, map[string]string{"org_id": orgID.String(), "input_raw": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("org_id not a uuid", func(t *testing.T) {
		w := doJSON(s, http.MethodPost, "/runs", token, map[string]string{"org_id": "pantry-14", "input_raw": "I live alone."})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid org_id")
	})
}

func TestCreateRun_Structured(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	_, token := seedMember(t, s, store, orgID, "caseworker")

	age := 3
	hours := 30.0
	w := doJSON(s, http.MethodPost, "/runs/structured", token, types.StructuredRunRequest{
		OrgID: orgID.String(),
		Household: types.HouseholdInput{
			HousingType:       "renting",
			RentAmount:        floatPtrServer(800),
			UtilitiesSeparate: true,
		},
		Persons: []types.PersonInput{
			{
				Role: "head_of_household",
				Income: []types.IncomeItem{
					{Type: "wages", Amount: 15, Frequency: types.FrequencyHourly, HoursPerWeek: &hours},
				},
			},
			{Role: "child", Age: &age},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result.Facts)
	assert.Equal(t, 2, resp.Result.Facts.HouseholdSize)
	require.NotNil(t, resp.Result.Facts.TotalMonthlyIncome)
	assert.Equal(t, 1948, *resp.Result.Facts.TotalMonthlyIncome)

	stored := store.runs[resp.RunID]
	require.NotNil(t, stored)
	assert.Equal(t, "structured", stored.InputMode)
	assert.Empty(t, stored.InputRaw)
}

func TestGetRun(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	caseworkerID, caseworkerToken := seedMember(t, s, store, orgID, "caseworker")
	volunteerID, volunteerToken := seedMember(t, s, store, orgID, "volunteer")

	runID, err := store.CreateRun(t.Context(), db.RunCreateInput{
		OrgID:     orgID,
		CreatedBy: caseworkerID,
		InputMode: "narrative",
		InputRaw:  "I live alone.",
	})
	require.NoError(t, err)

	t.Run("member can read", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/runs/"+runID.String(), caseworkerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), runID.String())
	})

	t.Run("volunteer cannot read another worker's run", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/runs/"+runID.String(), volunteerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("volunteer can read their own run", func(t *testing.T) {
		ownID, err := store.CreateRun(t.Context(), db.RunCreateInput{
			OrgID:     orgID,
			CreatedBy: volunteerID,
			InputMode: "narrative",
		})
		require.NoError(t, err)

		w := doJSON(s, http.MethodGet, "/runs/"+ownID.String(), volunteerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown run is 404", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/runs/"+uuid.New().String(), caseworkerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, "/runs/not-a-uuid", caseworkerToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListOrgRuns(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	caseworkerID, caseworkerToken := seedMember(t, s, store, orgID, "caseworker")
	volunteerID, volunteerToken := seedMember(t, s, store, orgID, "volunteer")

	for _, creator := range []uuid.UUID{caseworkerID, caseworkerID, volunteerID} {
		_, err := store.CreateRun(t.Context(), db.RunCreateInput{
			OrgID:     orgID,
			CreatedBy: creator,
			InputMode: "narrative",
		})
		require.NoError(t, err)
	}

	type listResponse struct {
		Runs  []db.RunSummary `json:"runs"`
		Count int             `json:"count"`
	}

	t.Run("caseworker sees all runs", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, fmt.Sprintf("/orgs/%s/runs", orgID), caseworkerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Count)
	})

	t.Run("volunteer sees only their own", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, fmt.Sprintf("/orgs/%s/runs", orgID), volunteerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, volunteerID, resp.Runs[0].CreatedBy)
	})

	t.Run("limit is honored", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, fmt.Sprintf("/orgs/%s/runs?limit=2", orgID), caseworkerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("bad limit is 400", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, fmt.Sprintf("/orgs/%s/runs?limit=zero", orgID), caseworkerToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-member is 403", func(t *testing.T) {
		w := doJSON(s, http.MethodGet, fmt.Sprintf("/orgs/%s/runs", uuid.New()), caseworkerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUpdatePassword_Route(t *testing.T) {
	s, store := setupTestServer(t)
	orgID := uuid.New()
	userID, token := seedMember(t, s, store, orgID, "caseworker")

	// Give the seeded user a password first
	hash, err := s.userService.passwordConfig.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, store.UpdatePassword(t.Context(), userID, hash))

	w := doJSON(s, http.MethodPut, "/auth/password", token, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Password updated successfully")

	w = doJSON(s, http.MethodPut, "/auth/password", "", map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func floatPtrServer(v float64) *float64 { return &v }
