package db

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupOrgAndUser creates an org with one member for run tests and
// returns a cleanup function
func setupOrgAndUser(t *testing.T, db *DB, role string) (orgID, userID uuid.UUID, cleanup func()) {
	ctx := context.Background()

	orgID, err := db.CreateOrg(ctx, "Test Org "+uuid.New().String())
	require.NoError(t, err)

	userID, err = db.CreateUser(ctx, "Run Tester", "run-"+uuid.New().String()+"@test.com")
	require.NoError(t, err)

	err = db.AddOrgMember(ctx, orgID, userID, role)
	require.NoError(t, err)

	return orgID, userID, func() {
		db.DeleteOrg(ctx, orgID)
		db.DeleteUser(ctx, userID)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	orgID, userID, cleanup := setupOrgAndUser(t, db, "caseworker")
	defer cleanup()

	facts := map[string]any{"household_size": 3, "total_monthly_income": 2100.0}
	result := map[string]any{"summary": map[string]any{"likely_eligible": []string{"SNAP"}}}

	runID, err := db.CreateRun(ctx, RunCreateInput{
		OrgID:     orgID,
		CreatedBy: userID,
		InputMode: "narrative",
		InputRaw:  "I live with my two kids and make $2,100 a month",
		Facts:     facts,
		Result:    result,
		Decision:  map[string]any{"decision": "likely"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, runID)
	defer db.DeleteRun(ctx, runID)

	run, err := db.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, orgID, run.OrgID)
	assert.Equal(t, userID, run.CreatedBy)
	assert.Equal(t, "narrative", run.InputMode)
	assert.Contains(t, run.InputRaw, "two kids")

	// jsonb round-trips the facts payload
	var storedFacts map[string]any
	require.NoError(t, json.Unmarshal(run.Facts, &storedFacts))
	assert.Equal(t, float64(3), storedFacts["household_size"])

	// Non-existent run returns nil, nil
	missing, err := db.GetRun(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListOrgRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	orgID, userID, cleanup := setupOrgAndUser(t, db, "caseworker")
	defer cleanup()

	otherUserID, err := db.CreateUser(ctx, "Other Worker", "other-"+uuid.New().String()+"@test.com")
	require.NoError(t, err)
	defer db.DeleteUser(ctx, otherUserID)
	require.NoError(t, db.AddOrgMember(ctx, orgID, otherUserID, "volunteer"))

	for _, creator := range []uuid.UUID{userID, userID, otherUserID} {
		runID, err := db.CreateRun(ctx, RunCreateInput{
			OrgID:     orgID,
			CreatedBy: creator,
			InputMode: "structured",
		})
		require.NoError(t, err)
		defer db.DeleteRun(ctx, runID)
	}

	all, err := db.ListOrgRuns(ctx, orgID, RunFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Volunteer scope: only their own runs
	mine, err := db.ListOrgRuns(ctx, orgID, RunFilters{CreatedBy: otherUserID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, otherUserID, mine[0].CreatedBy)

	limited, err := db.ListOrgRuns(ctx, orgID, RunFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestOrgMembership(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	orgID, userID, cleanup := setupOrgAndUser(t, db, "volunteer")
	defer cleanup()

	role, err := db.GetOrgRole(ctx, orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, "volunteer", role)

	// Role upsert replaces the prior role
	require.NoError(t, db.AddOrgMember(ctx, orgID, userID, "admin"))
	role, err = db.GetOrgRole(ctx, orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	// Non-member returns "" with no error
	role, err = db.GetOrgRole(ctx, orgID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "", role)

	require.NoError(t, db.RemoveOrgMember(ctx, orgID, userID))
	role, err = db.GetOrgRole(ctx, orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, "", role)
}
