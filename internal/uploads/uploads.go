package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Store writes multipart uploads under a single directory with
// uuid-prefixed names so client filenames never collide or escape the dir.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: mkdir %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// SaveForm stores the named form file and returns the stored filename.
// Returns "" without error when the field is absent.
func (s *Store) SaveForm(c echo.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return s.save(fh)
}

func (s *Store) save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "-" + filepath.Base(fh.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Path resolves a stored filename inside the upload dir.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}

// Exists reports whether a stored file is still present on disk.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(s.Path(name))
	return err == nil
}
