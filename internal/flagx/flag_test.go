package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-b", "files", "-a", ":8080"},
			allowed: []string{"-b"},
			want:    []string{"-b", "files"},
		},
		{
			name:    "equals form",
			args:    []string{"-b=files", "-a", ":8080"},
			allowed: []string{"-b"},
			want:    []string{"-b=files"},
		},
		{
			name:    "order preserved",
			args:    []string{"-a=:1", "-x", "1", "-b", "bucket"},
			allowed: []string{"-a", "-b"},
			want:    []string{"-a=:1", "-b", "bucket"},
		},
		{
			name:    "flag without value followed by flag",
			args:    []string{"-v", "-b", "bucket"},
			allowed: []string{"-v", "-b"},
			want:    []string{"-v", "-b", "bucket"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"upload", "notes.txt"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlagFrom(t *testing.T) {
	assert.Equal(t, "srv.json", ConfigFileFlagFrom([]string{"-a", ":5000", "-c", "srv.json"}))
	assert.Equal(t, "alt.json", ConfigFileFlagFrom([]string{"-config=alt.json"}))
	assert.Equal(t, "", ConfigFileFlagFrom([]string{"-a", ":5000"}))
}

func TestConfigFileFlag_ReadsOSArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"smartdrive", "-config", "from-os.json", "-s", "secret"}
	assert.Equal(t, "from-os.json", ConfigFileFlag())
}

func TestStripArgs(t *testing.T) {
	listed := []string{"-a", "-k", "-c"}

	got := StripArgs([]string{"-a", "http://x", "upload", "-k=dir", "notes.txt"}, listed)
	assert.Equal(t, []string{"upload", "notes.txt"}, got)

	got = StripArgs([]string{"download", "a.txt", "-c", "cfg.json", "/tmp/a.txt"}, listed)
	assert.Equal(t, []string{"download", "a.txt", "/tmp/a.txt"}, got)

	got = StripArgs([]string{"-v", "list"}, listed)
	assert.Equal(t, []string{"-v", "list"}, got)

	assert.Empty(t, StripArgs(nil, listed))
}
