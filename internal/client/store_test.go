package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-portfolio-console/internal/client"
	"go-portfolio-console/internal/domain"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
		"details": details,
	})
}

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/portfolio", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "Portfolio retrieved", map[string]any{
			"about":        map[string]any{"content": "Hello."},
			"personalInfo": map[string]any{"name": "Dana", "title": "Engineer"},
		}, nil)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)

	doc, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc, 2)

	about, ok := store.Section("about")
	assert.True(t, ok)
	assert.JSONEq(t, `{"content":"Hello."}`, string(about))
	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())
}

func TestFetchAllFailureKeepsOldDocument(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeEnvelope(w, http.StatusInternalServerError, false, "boom", nil, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{
			"about": map[string]any{"content": "Hello."},
		}, nil)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)
	_, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	fail.Store(true)
	_, err = store.FetchAll(context.Background())
	require.Error(t, err)

	// the previously fetched document survives the failure
	about, ok := store.Section("about")
	assert.True(t, ok)
	assert.JSONEq(t, `{"content":"Hello."}`, string(about))
	assert.Contains(t, store.Err(), "boom")
}

func TestFetchSectionErrorIsIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/portfolio/about":
			writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{"content": "Hello."}, nil)
		case "/api/portfolio/projects":
			writeEnvelope(w, http.StatusInternalServerError, false, "projects unavailable", nil, nil)
		default:
			writeEnvelope(w, http.StatusNotFound, false, "not found", nil, nil)
		}
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)

	_, err := store.FetchSection(context.Background(), "about")
	require.NoError(t, err)

	_, err = store.FetchSection(context.Background(), "projects")
	require.Error(t, err)

	// the failing section carries the error, the healthy one does not
	assert.Contains(t, store.Status("projects").Err, "projects unavailable")
	assert.Empty(t, store.Status("about").Err)

	about, ok := store.Section("about")
	assert.True(t, ok)
	assert.JSONEq(t, `{"content":"Hello."}`, string(about))
	_, ok = store.Section("projects")
	assert.False(t, ok)
}

func TestUpdateSectionWithoutTokenMakesNoRequest(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeEnvelope(w, http.StatusOK, true, "ok", nil, nil)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)

	err := store.UpdateSection(context.Background(), "about", json.RawMessage(`{"content":"x"}`), "")
	assert.ErrorIs(t, err, client.ErrAuthRequired)
	assert.Equal(t, int32(0), requests.Load())
}

func TestUpdateSectionSuccessReplacesLocalCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, true, "Section updated", nil, nil)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)
	payload := json.RawMessage(`{"content":"Updated."}`)

	require.NoError(t, store.UpdateSection(context.Background(), "about", payload, "token123"))

	about, ok := store.Section("about")
	assert.True(t, ok)
	assert.JSONEq(t, string(payload), string(about))
	assert.Empty(t, store.Status("about").Err)
}

func TestUpdateSectionFailureKeepsConfirmedData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{"content": "Original."}, nil)
		default:
			writeEnvelope(w, http.StatusBadRequest, false, "Validation failed", nil, []string{"Content is required"})
		}
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL)
	_, err := store.FetchSection(context.Background(), "about")
	require.NoError(t, err)

	err = store.UpdateSection(context.Background(), "about", json.RawMessage(`{"content":""}`), "token123")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Content is required"}, verr.Messages)

	// local copy still holds the confirmed data
	about, _ := store.Section("about")
	assert.JSONEq(t, `{"content":"Original."}`, string(about))
}

func TestValidationDetailsFormats(t *testing.T) {
	t.Run("Array details become messages in order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusBadRequest, false, "Validation failed", nil,
				[]string{"Name is required", "Title must be at most 120 characters"})
		}))
		defer srv.Close()

		store := client.NewStore(srv.URL)
		err := store.UpdateSection(context.Background(), "personalInfo", json.RawMessage(`{}`), "token")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Name is required", "Title must be at most 120 characters"}, verr.Messages)
	})

	t.Run("Map details are joined sorted by field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusBadRequest, false, "Validation failed", nil,
				map[string]string{"title": "Title is required", "name": "Name is required"})
		}))
		defer srv.Close()

		store := client.NewStore(srv.URL)
		err := store.UpdateSection(context.Background(), "personalInfo", json.RawMessage(`{}`), "token")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Name is required", "Title is required"}, verr.Messages)
	})

	t.Run("No details falls back to the message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, false, "Invalid token", nil, nil)
		}))
		defer srv.Close()

		store := client.NewStore(srv.URL)
		err := store.UpdateSection(context.Background(), "about", json.RawMessage(`{}`), "stale")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid token")
		assert.Contains(t, err.Error(), "401")
	})
}
