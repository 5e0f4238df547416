package utils

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad input", errors.New("cause"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeBody(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "bad input", resp.Error)
}

func TestMessageEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "done")

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "done", resp.Message)
}

func TestErrorFromStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Unauthenticated("who are you"), http.StatusUnauthorized},
		{apperr.Unauthorized("nope"), http.StatusForbidden},
		{apperr.Conflict("taken"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		ErrorFrom(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}

func TestErrorFromKeepsWrappedKind(t *testing.T) {
	wrapped := apperr.Wrap(apperr.KindConflict, errors.New("db says no"), "habit exists")

	rec := httptest.NewRecorder()
	ErrorFrom(rec, wrapped)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody(t, rec)
	assert.Contains(t, resp.Error, "habit exists")
}

func TestNullTimeToDay(t *testing.T) {
	day := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-09", NullTimeToDay(sql.NullTime{Time: day, Valid: true}))
	assert.Equal(t, "", NullTimeToDay(sql.NullTime{}))
}

func TestNullTimeToPointer(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	got := NullTimeToPointer(sql.NullTime{Time: day, Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, day, *got)

	assert.Nil(t, NullTimeToPointer(sql.NullTime{}))
}
