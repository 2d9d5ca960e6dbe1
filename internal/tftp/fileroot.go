package tftp

import (
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrEscapesRoot is returned by FileRoot.Open when the requested name
// contains a NUL byte. Names with ".." segments do not produce it: they are
// cleaned so the resolved path stays under the root directory. The server
// answers it with the same outward behavior as a missing file, so no
// information about *why* the open failed is leaked on the wire.
var ErrEscapesRoot = errors.New("tftp: path escapes root directory")

// FileRoot is the file collaborator: it opens read-only files by name,
// rooted at Dir, confining every name to Dir.
//
// Sanitization mirrors the standard library's net/http.Dir: prefixing the
// name with a leading slash before path.Clean collapses any leading
// ".." segments, so the joined path can never walk above Dir.
type FileRoot struct {
	Dir string
}

// Open resolves name against the root directory and opens it for reading.
func (r FileRoot) Open(name string) (*os.File, error) {
	if containsNUL(name) {
		return nil, ErrEscapesRoot
	}
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	clean := path.Clean("/" + name)
	full := filepath.Join(dir, filepath.FromSlash(clean))
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func containsNUL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}
	return false
}
