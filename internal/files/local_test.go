package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_UploadResolveDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "attachments"))
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	id, err := s.Upload(ctx, "Certificado NR35.PDF", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasSuffix(id, ".pdf") {
		t.Errorf("expected lower-case extension to be kept, got %s", id)
	}

	path, err := s.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "%PDF-1.4" {
		t.Errorf("unexpected content %q", data)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Resolve(id); err == nil {
		t.Error("expected resolve to fail after delete")
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Errorf("deleting twice should not fail: %v", err)
	}
}

func TestLocalStore_DistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := NewLocalStore(t.TempDir())

	a, _ := s.Upload(ctx, "a.pdf", strings.NewReader("a"))
	b, _ := s.Upload(ctx, "a.pdf", strings.NewReader("b"))
	if a == b {
		t.Error("expected distinct ids for the same name")
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, _ := NewLocalStore(t.TempDir())

	for _, id := range []string{"", "../etc/passwd", "sub/file.pdf", ".hidden"} {
		if _, err := s.Resolve(id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Resolve(%q): expected ErrInvalidID, got %v", id, err)
		}
	}
}
