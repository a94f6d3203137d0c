package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
	"github.com/goliatone/go-formsync/pkg/server"
)

func newServer(t *testing.T, options ...server.Option) *server.Server {
	t.Helper()
	store := formdef.NewStore(formdef.Form{
		ID:     "roll",
		Title:  "Roll dice",
		Action: "/forms/roll",
		Method: "GET",
		Fields: []field.Field{
			{ID: "dice", Name: "dice", Type: "number", Value: "3", Min: "1", Max: "20", InForm: true},
			{ID: "sides", Name: "sides", Type: "number", Value: "6", Min: "2", Max: "100", InForm: true},
		},
	})
	srv, err := server.New(store, options...)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFormRendersCanonicalQuery(t *testing.T) {
	srv := newServer(t)

	rec := get(t, srv, "/forms/roll?dice=5&sides=6")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="5"`)
	assert.Contains(t, rec.Body.String(), "?dice=5&amp;sides=6")
}

func TestFormRedirectsToCanonicalQuery(t *testing.T) {
	srv := newServer(t)

	rec := get(t, srv, "/forms/roll?dice=999&sides=12&extra=1")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/forms/roll?dice=3&sides=12", rec.Header().Get("Location"))

	rec = get(t, srv, "/forms/roll")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/forms/roll?dice=3&sides=6", rec.Header().Get("Location"))
}

func TestFormWithoutRedirect(t *testing.T) {
	srv := newServer(t, server.WithRedirect(false))

	rec := get(t, srv, "/forms/roll?dice=999")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="3"`)
}

func TestUnknownForm(t *testing.T) {
	rec := get(t, newServer(t), "/forms/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndHealth(t *testing.T) {
	srv := newServer(t)

	rec := get(t, srv, "/forms")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"roll"}, body["forms"])

	rec = get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := newServer(t, server.WithRegistry(reg), server.WithRedirect(false))

	get(t, srv, "/forms/roll?dice=999&bogus=1")

	expected := `
# HELP formsync_rejected_params_total Query parameters not applied to a form
# TYPE formsync_rejected_params_total counter
formsync_rejected_params_total{reason="out_of_range"} 1
formsync_rejected_params_total{reason="unknown_field"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "formsync_rejected_params_total"))

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "formsync_http_requests_total")
}

func TestNewRequiresStore(t *testing.T) {
	_, err := server.New(nil)
	require.Error(t, err)
}
