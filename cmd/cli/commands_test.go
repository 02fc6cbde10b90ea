package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	host = "http://localhost:8080"
	defer func() { dryRun = false }()

	u, err := buildURL("/pairings?announce=true")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/pairings?announce=true", u)

	dryRun = true
	u, err = buildURL("/pairings?announce=true")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/pairings?announce=true&dry_run=true", u)
}

func TestReportCommandSendsJSON(t *testing.T) {
	var got map[string]int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/matches", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()
	host = srv.URL

	require.NoError(t, reportCmd.RunE(reportCmd, []string{"3", "4"}))
	assert.Equal(t, map[string]int64{"winner": 3, "loser": 4}, got)
}

func TestReportCommandRejectsBadIDs(t *testing.T) {
	err := reportCmd.RunE(reportCmd, []string{"abc", "4"})
	assert.Error(t, err)
}
