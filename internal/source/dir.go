package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"tea-backend/internal/models"
)

// FSSource reads <fileName>.json, falling back to <fileName>.xlsx, from a
// filesystem.
type FSSource struct {
	FS   fs.FS
	Name string
}

// NewDir reads batches from a local directory.
func NewDir(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir), Name: dir}
}

func (s *FSSource) Describe() string {
	return "dir:" + s.Name
}

func (s *FSSource) Open(ctx context.Context, kind models.EntityKind) ([]json.RawMessage, error) {
	for _, ext := range []string{ExtJSON, ExtXLSX} {
		name := kind.FileName() + ext
		data, err := fs.ReadFile(s.FS, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		records, err := decode(kind, ext, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return records, nil
	}
	return nil, ErrNotFound
}
