package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-console/internal/client"
	"go-portfolio-console/internal/domain"
)

func authedProvider(t *testing.T, baseURL string) *client.TokenProvider {
	t.Helper()
	dir := t.TempDir()
	token := signedToken(t, time.Hour)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adminToken"), []byte(token), 0o600))

	provider, err := client.NewTokenProvider(baseURL, dir)
	require.NoError(t, err)
	return provider
}

func emptyProvider(t *testing.T, baseURL string) *client.TokenProvider {
	t.Helper()
	provider, err := client.NewTokenProvider(baseURL, t.TempDir())
	require.NoError(t, err)
	return provider
}

func TestGetStructureIsPublic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/portfolio/skills/structure", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, true, "ok", domain.DefaultSkillsStructure(), nil)
	}))
	defer srv.Close()

	api := client.NewSkillsAPI(srv.URL, emptyProvider(t, srv.URL))
	structure, err := api.GetStructure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Languages", structure.Categories[0].Name)
}

func TestGetFlattened(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/portfolio/skills/flat", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "ok",
			json.RawMessage(`{"Languages":[{"name":"Go","level":"advanced"}]}`), nil)
	}))
	defer srv.Close()

	api := client.NewSkillsAPI(srv.URL, emptyProvider(t, srv.URL))
	flat, err := api.GetFlattened(context.Background())
	require.NoError(t, err)

	langs, ok := flat.Get("Languages")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryFlat, langs.Kind)
}

func TestGetCategorizationRequiresToken(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	api := client.NewSkillsAPI(srv.URL, emptyProvider(t, srv.URL))
	_, err := api.GetCategorization(context.Background())
	assert.ErrorIs(t, err, client.ErrAuthRequired)
	assert.Zero(t, requests)
}

func TestGetCategorizationNotFoundYieldsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "No categorization settings stored", nil, nil)
	}))
	defer srv.Close()

	api := client.NewSkillsAPI(srv.URL, authedProvider(t, srv.URL))
	settings, err := api.GetCategorization(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategorizationSettings(), settings)
}

func TestConfigureCategorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/linkedin/configure-categorization", r.URL.Path)

		var body struct {
			Categorization domain.CategorizationSettings `json:"categorization"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 4, body.Categorization.MinSkillsForSubcategory)

		writeEnvelope(w, http.StatusOK, true, "saved", nil, nil)
	}))
	defer srv.Close()

	api := client.NewSkillsAPI(srv.URL, authedProvider(t, srv.URL))
	err := api.ConfigureCategorization(context.Background(), domain.CategorizationSettings{
		UseSubcategories:        true,
		MinSkillsForSubcategory: 4,
		CategoryOverrides:       map[string]domain.CategorizationMode{"Tools": domain.ModeFlat},
	})
	assert.NoError(t, err)
}
