package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sut-badminton/registration/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrQRCodeNotConfigured, http.StatusNotFound},
		{services.ErrPhotosRequired, http.StatusBadRequest},
		{fmt.Errorf("%w: F", services.ErrInvalidLevel), http.StatusBadRequest},
		{services.ErrInvalidStatusTransition, http.StatusBadRequest},
		{services.ErrTeamNotPassedEvaluation, http.StatusForbidden},
		{services.ErrStatusConflict, http.StatusConflict},
		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: timeout", services.ErrUploadFailed), http.StatusInternalServerError},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			newResponder(nil).mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestServerErrorDoesNotLeakCause(t *testing.T) {
	var logs bytes.Buffer
	rs := newResponder(slog.New(slog.NewJSONHandler(&logs, nil)))

	rec := httptest.NewRecorder()
	rs.mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed for user postgres"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "postgres")
	// The cause goes to the handler's own logger instead.
	assert.Contains(t, logs.String(), "password authentication failed")
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		TeamID int `json:"team_id"`
	}

	read := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return readJSON(httptest.NewRecorder(), req, &dst)
	}

	require.NoError(t, read(`{"team_id": 7}`))
	assert.Equal(t, 7, dst.TeamID)

	assert.ErrorContains(t, read(``), "must not be empty")
	assert.ErrorContains(t, read(`{"team_id": "7"}`), "incorrect JSON type")
	assert.ErrorContains(t, read(`{"team_id": 7, "x": 1}`), "unknown key")
	assert.ErrorContains(t, read(`{"team_id": 7}{}`), "single JSON value")
	assert.ErrorContains(t, read(`{"team_id":`), "badly-formed")
}

func TestGetIDFromURLRequiresChiContext(t *testing.T) {
	_, err := getIDFromURL(httptest.NewRequest(http.MethodGet, "/", nil), "teamId")
	assert.Error(t, err)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathParam(t *testing.T) {
	// Default escaping: chi routed on the decoded path.
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/status/name/Net%20Ninjas", nil), "teamName", "Net Ninjas")
	got, err := getPathParam(req, "teamName")
	require.NoError(t, err)
	assert.Equal(t, "Net Ninjas", got)

	// "%26" is not Go's default escaping of "&", so chi routed on the raw path.
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/status/name/Smash%20%26%20Dash", nil), "teamName", "Smash%20%26%20Dash")
	require.NotEmpty(t, req.URL.RawPath)
	got, err = getPathParam(req, "teamName")
	require.NoError(t, err)
	assert.Equal(t, "Smash & Dash", got)

	// A literal percent sign arrives decoded and must not be decoded twice.
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/status/name/100%25", nil), "teamName", "100%")
	got, err = getPathParam(req, "teamName")
	require.NoError(t, err)
	assert.Equal(t, "100%", got)

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/status/name/x", nil), "teamName", "bad%zz")
	req.URL.RawPath = "/api/status/name/bad%zz"
	_, err = getPathParam(req, "teamName")
	assert.Error(t, err)
}

func TestParseMultipartRejectsOversizedBody(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("p1_photo", "huge.png")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{'x'}, maxUploadSize+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	err = parseMultipart(rec, req)
	require.ErrorIs(t, err, errUploadTooLarge)

	newResponder(nil).multipartErrorResponse(rec, req, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMultipartErrorResponseIsBadRequestOtherwise(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	err := parseMultipart(rec, req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUploadTooLarge)

	newResponder(nil).multipartErrorResponse(rec, req, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
