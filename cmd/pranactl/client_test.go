package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReflect_PostsTextAndPrintsBody(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/user_1/reflections", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"pointsEarned":12}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runReflect(srv.URL, "user_1", "a long enough reflection about calm energy", &out)
	require.NoError(t, err)
	assert.Equal(t, "a long enough reflection about calm energy", gotBody["text"])
	assert.Contains(t, out.String(), "pointsEarned")
}

func TestRunActivate_UnexpectedStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"chakraIndex must be between 0 and 6"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runActivate(srv.URL, "user_1", "9", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 400")
}

func TestRunProgress_PrintsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/user_1/progress", r.URL.Path)
		_, _ = w.Write([]byte(`{"currentStreak":3,"energyPoints":55}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runProgress(srv.URL, "user_1", &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"currentStreak":3`)
}
