package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestPositionBelow(t *testing.T) {
	out, err := run(t, "position", "--anchor", "10,5,12,1", "--size", "20,6", "--viewport", "80,24")
	require.NoError(t, err)
	assert.Contains(t, out, "rect:     x=10 y=6 w=20 h=6")
	assert.Contains(t, out, "source:   primary")
	assert.Contains(t, out, "clamped:  false")
}

func TestPositionFlipsAbove(t *testing.T) {
	out, err := run(t, "position", "--anchor", "10,20,12,1", "--size", "20,6", "--viewport", "80,24", "--gap", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "rect:     x=10 y=13 w=20 h=6")
	assert.Contains(t, out, "source:   fallback 0")
}

func TestPositionAtPointer(t *testing.T) {
	out, err := run(t, "position", "--pointer", "78,2", "--size", "12,4", "--viewport", "80,24", "--draw")
	require.NoError(t, err)
	assert.Contains(t, out, "rect:     x=66 y=2 w=12 h=4")
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "+")
}

func TestPositionConfigPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headless.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  dropdown:\n    base: below\n    gap: 1\n"), 0o644))

	out, err := run(t, "position", "--config", path, "--preset", "dropdown", "--viewport", "80,24")
	require.NoError(t, err)
	assert.Contains(t, out, "rect:     x=10 y=7 w=20 h=6")
}

func TestPositionErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown preset", []string{"--preset", "sideways"}, `unknown preset "sideways"`},
		{"short anchor", []string{"--anchor", "1,2"}, "--anchor wants 4 values"},
		{"bad viewport", []string{"--viewport", "1,2,3"}, "--viewport wants 2 values"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"position", "--viewport", "80,24"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "headless version "+Version)
}
