package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/benefits-navigator/internal/db"
	"github.com/jonathan/benefits-navigator/internal/server/middleware"
	"github.com/jonathan/benefits-navigator/internal/types"
)

// RunResponse is the payload returned when a screening run completes.
type RunResponse struct {
	RunID    uuid.UUID                 `json:"run_id"`
	Result   *types.MultiProgramResult `json:"result"`
	Decision *types.DecisionMap        `json:"decision"`
}

// handleCreateRun screens a raw household narrative and persists the run.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid org_id")
		return
	}

	if _, err := s.requireOrgRole(r, orgID, userID); err != nil {
		s.serviceError(w, err)
		return
	}

	facts := s.extractor.Extract(req.InputRaw)
	result := s.evaluator.Aggregate(facts)
	decision := s.evaluator.DecisionMap(facts)

	runID, err := s.store.CreateRun(r.Context(), db.RunCreateInput{
		OrgID:     orgID,
		CreatedBy: userID,
		InputMode: "narrative",
		InputRaw:  req.InputRaw,
		Facts:     facts,
		Result:    result,
		Decision:  decision,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, RunResponse{
		RunID:    runID,
		Result:   result,
		Decision: decision,
	})
}

// handleCreateStructuredRun screens a structured household description,
// bypassing pattern extraction.
func (s *Server) handleCreateStructuredRun(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.StructuredRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid org_id")
		return
	}

	if _, err := s.requireOrgRole(r, orgID, userID); err != nil {
		s.serviceError(w, err)
		return
	}

	facts := s.extractor.FromStructured(&req)
	result := s.evaluator.Aggregate(facts)
	decision := s.evaluator.DecisionMap(facts)

	runID, err := s.store.CreateRun(r.Context(), db.RunCreateInput{
		OrgID:     orgID,
		CreatedBy: userID,
		InputMode: "structured",
		Facts:     facts,
		Result:    result,
		Decision:  decision,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, RunResponse{
		RunID:    runID,
		Result:   result,
		Decision: decision,
	})
}

// handleGetRun returns a stored screening run. Volunteers may only read
// runs they created.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if run == nil {
		s.serviceError(w, &ErrRunNotFound{RunID: runID})
		return
	}

	role, err := s.requireOrgRole(r, run.OrgID, userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if role == "volunteer" && run.CreatedBy != userID {
		s.serviceError(w, &ErrOrgAccessDenied{OrgID: run.OrgID})
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleListOrgRuns lists an org's recent runs. Volunteers see only
// their own.
func (s *Server) handleListOrgRuns(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orgID, err := uuid.Parse(r.PathValue("org_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid org ID")
		return
	}

	role, err := s.requireOrgRole(r, orgID, userID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	filters := db.RunFilters{}
	if role == "volunteer" {
		filters.CreatedBy = userID
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	runs, err := s.store.ListOrgRuns(r.Context(), orgID, filters)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if runs == nil {
		runs = []db.RunSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// requireOrgRole returns the caller's role in the org, or ErrOrgAccessDenied
// when the caller is not a member.
func (s *Server) requireOrgRole(r *http.Request, orgID, userID uuid.UUID) (string, error) {
	role, err := s.store.GetOrgRole(r.Context(), orgID, userID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", &ErrOrgAccessDenied{OrgID: orgID}
	}
	return role, nil
}

// serviceError maps a service error to its HTTP status and writes it.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
