package fallback

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quartzlabs/storehelper/product"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	want := []product.ID{"com.app.gold", "com.app.silver"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("load: got %v, want %v", got, want)
	}
}

func TestMemoryLoadCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.Save(ctx, []product.ID{"a"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, _ := s.Load(ctx)
	got[0] = "mutated"

	again, _ := s.Load(ctx)
	if again[0] != "a" {
		t.Errorf("internal state was mutated through a returned slice")
	}
}

func TestFileMissingLoadsEmpty(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), DefaultFilename))

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("load: got %v, want empty", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	s := NewFile(path)

	want := []product.ID{"com.app.gold", "com.app.coins"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A fresh store on the same path sees the saved list.
	got, err := NewFile(path).Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("load: got %v, want %v", got, want)
	}
}

func TestFileSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewFile(filepath.Join(t.TempDir(), DefaultFilename))

	if err := s.Save(ctx, []product.ID{"a", "b"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Save(ctx, []product.ID{"c"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(got, []product.ID{"c"}) {
		t.Errorf("load: got %v, want [c]", got)
	}
}

func TestFileSaveNilWritesEmptyList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	s := NewFile(path)

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file contents: got %q, want %q", data, "[]")
	}
}

func TestFileCorruptReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := NewFile(path).Load(context.Background()); err == nil {
		t.Errorf("expected decode error for corrupt file")
	}
}
