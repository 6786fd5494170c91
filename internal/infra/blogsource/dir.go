package blogsource

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanqian/vat-directory/internal/domain/blog"
)

// DirSource reads posts from a local directory.
type DirSource struct {
	dir string
}

// NewDirSource constructs a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// List implements blog.Source. A missing directory has no posts.
func (s *DirSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read implements blog.Source.
func (s *DirSource) Read(_ context.Context, name string) ([]byte, bool, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, false, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

var _ blog.Source = (*DirSource)(nil)
