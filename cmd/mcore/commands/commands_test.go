package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Defaults(nil, &out))
	assert.Contains(t, out.String(), "command_capacity = 4096")

	out.Reset()
	require.NoError(t, Defaults([]string{"--format", "yaml"}, &out))
	assert.Contains(t, out.String(), "command_capacity: 4096")

	assert.Error(t, Defaults([]string{"--format", "ini"}, &out))
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcore.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_nodes = 64\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, Check([]string{path}, &out))
	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "max nodes         64")

	assert.Error(t, Check(nil, &out))

	require.NoError(t, os.WriteFile(path, []byte("max_nodes = -1\n"), 0o644))
	assert.ErrorContains(t, Check([]string{path}, &out), "max_nodes")
}

func TestPreview(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Preview(nil, &out))
	assert.Contains(t, out.String(), "commands:")
	assert.Contains(t, out.String(), "clips 2")
	assert.Contains(t, out.String(), "accessibility nodes:")
}
