package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_RestoresSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFileName),
		[]byte(`{"username":"bob","access_token":"tok"}`), 0o600))

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files":[]}`))
	}))
	defer srv.Close()

	a, err := NewApp(&config.Config{ServerURL: srv.URL, TokenDir: dir, RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(bob)", a.getStatus())

	require.NoError(t, a.Run(context.Background(), []string{"list"}))
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestNewApp_CorruptSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFileName), []byte("nope"), 0o600))

	_, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:1", TokenDir: dir, RequestTimeout: time.Second})
	assert.ErrorContains(t, err, "corrupt session file")
}

func TestApp_RunOneShot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","service":"Cloud-smart-storage"}`))
	}))
	defer srv.Close()

	a, err := NewApp(&config.Config{ServerURL: srv.URL, TokenDir: t.TempDir(), RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.Run(context.Background(), []string{"health"}))
	assert.ErrorIs(t, a.Run(context.Background(), []string{"bogus"}), errUnknownCommand)
	assert.Error(t, a.Run(context.Background(), []string{"upload"}))
}
