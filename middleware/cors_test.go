package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sut-badminton/registration/config"
)

func TestOriginChecker(t *testing.T) {
	strict := OriginChecker(config.CORSConfig{AllowedOrigins: []string{"https://badminton.example"}})
	assert.True(t, strict("https://badminton.example"))
	assert.False(t, strict("https://evil.example"))
	assert.False(t, strict("http://localhost:3000"))
	assert.False(t, strict("null"))

	dev := OriginChecker(config.CORSConfig{AllowLocalhost: true, AllowNullOrigin: true})
	assert.True(t, dev("http://localhost:5173"))
	assert.True(t, dev("http://127.0.0.1:8080"))
	assert.True(t, dev("http://[::1]:3000"))
	assert.True(t, dev("null"))
	assert.False(t, dev("http://localhost.evil.example"))
}

func TestCORS_Headers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := CORS(config.CORSConfig{AllowedOrigins: []string{"https://badminton.example"}}, logger)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/team-count-by-level", nil)
	req.Header.Set("Origin", "https://badminton.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://badminton.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/team-count-by-level", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
