package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: id}, http.StatusNotFound},
		{"run not found", &ErrRunNotFound{RunID: id}, http.StatusNotFound},
		{"org access denied", &ErrOrgAccessDenied{OrgID: id}, http.StatusForbidden},
		{"validation", &ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	id := uuid.New()

	assert.Contains(t, (&ErrEmailAlreadyExists{Email: "a@b.com"}).Error(), "a@b.com")
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Contains(t, (&ErrUserNotFound{UserID: id}).Error(), id.String())
	assert.Contains(t, (&ErrRunNotFound{RunID: id}).Error(), id.String())
	assert.Contains(t, (&ErrOrgAccessDenied{OrgID: id}).Error(), id.String())
	assert.Contains(t, (&ErrValidation{Field: "email", Message: "required"}).Error(), "email")
}
