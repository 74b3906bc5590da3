package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/service"
	"github.com/lucianli/cookbook-graphql/internal/testhelpers"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	gin.SetMode(gin.TestMode)

	s := testhelpers.NewSQLiteStore(t)
	cfg := &config.Config{
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	svc := service.NewCatalogService(s, service.DefaultPolicy(), nil)

	srv, err := New(cfg, s, svc, nil, logging.Discard().Slog())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealthReportsUnreachableStore(t *testing.T) {
	srv, ts := newTestServer(t)
	require.NoError(t, srv.store.Close(context.Background()))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGraphQLRoute(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"query":"mutation { addUser(userToAdd: {email: \"a@x\", username: \"a\", password: \"p\"}) { username savedRecipes } }"}`
	resp, err := http.Post(ts.URL+"/graphql", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Data struct {
			AddUser struct {
				Username     string   `json:"username"`
				SavedRecipes []string `json:"savedRecipes"`
			} `json:"addUser"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "a", out.Data.AddUser.Username)
	assert.Equal(t, []string{}, out.Data.AddUser.SavedRecipes)

	resp, err = http.Get(ts.URL + "/graphql?query=" + "%7B%20allRecipes%20%7B%20_id%20%7D%20%7D")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/recipes")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}
