package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	dsn := filepath.Join(tmp, "state", "cache", "roomadmin.db")

	require.NoError(t, EnsureParentDir(dsn))

	fi, err := os.Stat(filepath.Dir(dsn))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(dsn)
	require.True(t, os.IsNotExist(err), "must not create the file itself")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "db", "x.db")
	require.NoError(t, EnsureParentDir(dsn))
	require.NoError(t, EnsureParentDir(dsn))
}

func TestEnsureParentDir_SkipsSpecialDSNs(t *testing.T) {
	for _, dsn := range []string{"", ":memory:", "file:test.db?mode=memory", "roomadmin.db"} {
		require.NoError(t, EnsureParentDir(dsn), dsn)
	}
}

func TestEnsureParentDir_ErrorWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "sub", "x.db"))
	require.Error(t, err)
}
