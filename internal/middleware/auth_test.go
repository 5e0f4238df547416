package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthWithoutContextUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/habits", nil)

	_, err := RequireAuth(r)
	require.Error(t, err)
	// Identité absente = 401, pas 403 : le caller n'a jamais été authentifié
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestRequireAuthWithContextUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/habits", nil)
	ctx := context.WithValue(r.Context(), userContextKey, model.UserProfile{ID: "u1", Username: "alice"})
	r = r.WithContext(ctx)

	user, err := RequireAuth(r)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestGetTokenFromContext(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/logout", nil)

	_, err := GetTokenFromContext(r)
	assert.Error(t, err)

	r = r.WithContext(context.WithValue(r.Context(), tokenContextKey, "tok-123"))
	token, err := GetTokenFromContext(r)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}
