package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDetect_NoArgs(t *testing.T) {
	assert.Error(t, HandleDetect([]string{}))
}

func TestHandleDetect_Help(t *testing.T) {
	assert.NoError(t, HandleDetect([]string{"--help"}))
}

func TestHandleDetect_HAR(t *testing.T) {
	assert.NoError(t, HandleDetect([]string{writeSampleHAR(t)}))
}

func TestHandleDetect_Undetectable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nothing": true}`), 0o644))

	assert.Error(t, HandleDetect([]string{path}))
}

func TestHandleDetect_MissingFile(t *testing.T) {
	assert.Error(t, HandleDetect([]string{filepath.Join(t.TempDir(), "absent.json")}))
}
