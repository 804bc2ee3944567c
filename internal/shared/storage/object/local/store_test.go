package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"recruit-backend/internal/shared/storage/object"
)

func TestSaveOpenStatDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	content := []byte("%PDF-1.4\nhello")

	size, mimeType, err := store.Save(ctx, "a.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), size)
	}
	if mimeType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", mimeType)
	}

	statSize, err := store.Stat(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if statSize != size {
		t.Fatalf("Stat size %d != Save size %d", statSize, size)
	}

	r, err := store.Open(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("content mismatch")
	}

	if err := store.Delete(ctx, "a.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Stat(ctx, "a.pdf"); !errors.Is(err, object.ErrNotExist) {
		t.Fatalf("expected ErrNotExist after delete, got %v", err)
	}
}

func TestMissingObjectErrNotExist(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Open(ctx, "missing.pdf"); !errors.Is(err, object.ErrNotExist) {
		t.Fatalf("Open: expected ErrNotExist, got %v", err)
	}
	if _, err := store.Stat(ctx, "missing.pdf"); !errors.Is(err, object.ErrNotExist) {
		t.Fatalf("Stat: expected ErrNotExist, got %v", err)
	}
	if err := store.Delete(ctx, "missing.pdf"); !errors.Is(err, object.ErrNotExist) {
		t.Fatalf("Delete: expected ErrNotExist, got %v", err)
	}
}

func TestRejectsEscapingNames(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	names := []string{"", ".", "..", "../evil.pdf", "a/b.pdf", `a\b.pdf`, "/etc/passwd"}
	for _, name := range names {
		if _, _, err := store.Save(ctx, name, bytes.NewReader([]byte("x"))); err == nil {
			t.Errorf("Save(%q): expected error", name)
		}
		if _, err := store.Open(ctx, name); err == nil || errors.Is(err, object.ErrNotExist) {
			t.Errorf("Open(%q): expected name rejection, got %v", name, err)
		}
	}
}
