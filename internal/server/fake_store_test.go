package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/benefits-navigator/internal/db"
)

// fakeStore is an in-memory DBClient for handler and service tests.
type fakeStore struct {
	users  map[uuid.UUID]*db.User
	emails map[string]uuid.UUID
	runs   map[uuid.UUID]*db.Run
	roles  map[uuid.UUID]map[uuid.UUID]string // orgID -> userID -> role

	failWith error // when set, every method returns this error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[uuid.UUID]*db.User),
		emails: make(map[string]uuid.UUID),
		runs:   make(map[uuid.UUID]*db.Run),
		roles:  make(map[uuid.UUID]map[uuid.UUID]string),
	}
}

func (f *fakeStore) addMember(orgID, userID uuid.UUID, role string) {
	if f.roles[orgID] == nil {
		f.roles[orgID] = make(map[uuid.UUID]string)
	}
	f.roles[orgID][userID] = role
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	if f.failWith != nil {
		return uuid.Nil, f.failWith
	}
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	f.emails[email] = id
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	id, ok := f.emails[email]
	if !ok {
		return nil, nil
	}
	return f.GetUser(context.Background(), id)
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) CreateRun(_ context.Context, input db.RunCreateInput) (uuid.UUID, error) {
	if f.failWith != nil {
		return uuid.Nil, f.failWith
	}
	factsJSON, err := json.Marshal(input.Facts)
	if err != nil {
		return uuid.Nil, err
	}
	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return uuid.Nil, err
	}
	decisionJSON, err := json.Marshal(input.Decision)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	f.runs[id] = &db.Run{
		ID:        id,
		OrgID:     input.OrgID,
		CreatedBy: input.CreatedBy,
		InputMode: input.InputMode,
		InputRaw:  input.InputRaw,
		Facts:     factsJSON,
		Result:    resultJSON,
		Decision:  decisionJSON,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetRun(_ context.Context, runID uuid.UUID) (*db.Run, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	run, ok := f.runs[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

func (f *fakeStore) ListOrgRuns(_ context.Context, orgID uuid.UUID, filters db.RunFilters) ([]db.RunSummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if filters.Limit == 0 {
		filters.Limit = 50
	}
	var runs []db.RunSummary
	for _, run := range f.runs {
		if run.OrgID != orgID {
			continue
		}
		if filters.CreatedBy != uuid.Nil && run.CreatedBy != filters.CreatedBy {
			continue
		}
		runs = append(runs, db.RunSummary{
			ID:        run.ID,
			CreatedBy: run.CreatedBy,
			InputMode: run.InputMode,
			CreatedAt: run.CreatedAt,
		})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	if len(runs) > filters.Limit {
		runs = runs[:filters.Limit]
	}
	return runs, nil
}

func (f *fakeStore) GetOrgRole(_ context.Context, orgID, userID uuid.UUID) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.roles[orgID][userID], nil
}
