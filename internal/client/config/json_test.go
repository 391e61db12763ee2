package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, `{"server_url":"https://drive.example","token_dir":"tok","request_timeout":"3s"}`)
		os.Args = []string{"cmd", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "https://drive.example", cfg.ServerURL)
		assert.Equal(t, "tok", cfg.TokenDir)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		path := writeTempJSON(t, `{"token_dir":"only"}`)
		os.Args = []string{"cmd", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://127.0.0.1:5000", cfg.ServerURL)
		assert.Equal(t, "only", cfg.TokenDir)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag is a no-op", func(t *testing.T) {
		os.Args = []string{"cmd"}
		cfg := &Config{ServerURL: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.ServerURL)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "nope.json")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("bad json panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", writeTempJSON(t, "{")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
