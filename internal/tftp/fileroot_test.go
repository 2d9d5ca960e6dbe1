package tftp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRootOpensWithinRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.0"), []byte("data"), 0o644))

	root := FileRoot{Dir: dir}
	f, err := root.Open("boot.0")
	require.NoError(t, err)
	defer f.Close()
}

func TestFileRootRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	secret := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secret, "secret"), []byte("nope"), 0o644))

	root := FileRoot{Dir: dir}
	rel, err := filepath.Rel(dir, filepath.Join(secret, "secret"))
	require.NoError(t, err)

	_, err = root.Open(rel)
	require.Error(t, err)
}

func TestFileRootRejectsAbsoluteEscape(t *testing.T) {
	dir := t.TempDir()
	root := FileRoot{Dir: dir}

	_, err := root.Open("../../../../etc/passwd")
	require.Error(t, err)
}
