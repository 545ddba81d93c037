package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := s.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	s := NewSQLiteStore()

	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLiteStore_InitSchema(t *testing.T) {
	s := setupTestStore(t)

	rows, err := s.db.Query("SELECT 1 FROM shares LIMIT 1")
	if err != nil {
		t.Errorf("shares table does not exist: %v", err)
	} else {
		rows.Close()
	}
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	s := NewSQLiteStore()
	ctx := context.Background()

	if _, err := s.SaveDocument(ctx, "{}"); err == nil {
		t.Error("SaveDocument should fail before Open")
	}
	if _, err := s.GetDocument(ctx, "x"); err == nil {
		t.Error("GetDocument should fail before Open")
	}
}

func TestSQLiteStore_SaveGetDocument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	payload := `{"kyselyVersion":"0.27.2","dialect":"postgres","ts":"select 1"}`
	id, err := s.SaveDocument(ctx, payload)
	if err != nil {
		t.Fatalf("failed to save document: %v", err)
	}
	if id == "" {
		t.Fatal("document id should not be empty")
	}

	got, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("failed to get document: %v", err)
	}
	if got != payload {
		t.Errorf("expected payload %q, got %q", payload, got)
	}
}

func TestSQLiteStore_GetDocument_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetDocument(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_DeleteOldDocuments(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDocument(ctx, "{}")
	if err != nil {
		t.Fatalf("failed to save document: %v", err)
	}

	// Fresh documents survive the retention sweep.
	deleted, err := s.DeleteOldDocuments(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("failed to delete old documents: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deletions, got %d", deleted)
	}
	if _, err := s.GetDocument(ctx, id); err != nil {
		t.Errorf("fresh document should survive: %v", err)
	}

	// Everything is older than a zero-width window.
	deleted, err = s.DeleteOldDocuments(ctx, -time.Hour)
	if err != nil {
		t.Fatalf("failed to delete old documents: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deletion, got %d", deleted)
	}
	if _, err := s.GetDocument(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after sweep, got %v", err)
	}
}
