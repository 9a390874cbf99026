package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "state", "install.lock")
	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create the parent directory")

	// Idempotent on an existing directory.
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_BareFilenameIsNoOp(t *testing.T) {
	t.Parallel()

	require.NoError(t, EnsureParentDir("install.lock"))
}

func TestWriteJSON_ReadJSON_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "marker.json")

	type marker struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}

	require.NoError(t, WriteJSON(path, marker{Status: "completed", Version: "1.0.0"}))

	var got marker
	require.NoError(t, ReadJSON(path, &got))
	require.Equal(t, "completed", got.Status)
	require.Equal(t, "1.0.0", got.Version)
}

func TestReadJSON_MissingFile(t *testing.T) {
	var v map[string]any
	err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &v)
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
