// Package files stores uploaded attachments on local disk.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned for ids that do not name a stored attachment
var ErrInvalidID = errors.New("invalid attachment id")

// LocalStore keeps attachments in a single directory, named by id
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create attachments dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Upload copies r into a new attachment and returns its id: a uuid plus
// the original file extension.
func (s *LocalStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	id := uuid.NewString() + strings.ToLower(filepath.Ext(name))

	f, err := os.OpenFile(filepath.Join(s.dir, id), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close attachment: %w", err)
	}
	return id, nil
}

// Delete removes an attachment. Deleting a missing attachment is not an error.
func (s *LocalStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// Resolve returns the path of an existing attachment
func (s *LocalStore) Resolve(id string) (string, error) {
	path, err := s.path(id)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("resolve %s: %w", id, err)
	}
	return path, nil
}

func (s *LocalStore) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id), nil
}
