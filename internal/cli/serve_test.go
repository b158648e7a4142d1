package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/physiotrack/internal/config"
	"github.com/Flyrell/physiotrack/internal/logging"
)

func TestNewWebAPIServesClinic(t *testing.T) {
	tc := newTestClinic(t)
	a := &app{
		cfg:    config.Config{Server: config.ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}},
		logger: logging.Discard(),
		store:  tc.store,
		clinic: tc.svc,
	}

	api := newWebAPI(a, "")
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/athletes/at-1/calendar?year=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Year int `json:"year"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2025, body.Year)
}
