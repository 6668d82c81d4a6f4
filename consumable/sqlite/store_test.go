package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/quartzlabs/storehelper/product"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestPurchaseExpireRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.Purchase(ctx, "coins"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if err := s.Purchase(ctx, "coins"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if got, _ := s.Count(ctx, "coins"); got != 2 {
		t.Errorf("count: got %d, want 2", got)
	}

	if err := s.Expire(ctx, "coins"); err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if got, _ := s.Count(ctx, "coins"); got != 1 {
		t.Errorf("count after expire: got %d, want 1", got)
	}
}

func TestExpireFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.Purchase(ctx, "coins"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Expire(ctx, "coins"); err != nil {
			t.Fatalf("expire failed: %v", err)
		}
	}
	if got, _ := s.Count(ctx, "coins"); got != 0 {
		t.Errorf("count: got %d, want 0", got)
	}

	// The entry survives at zero rather than being deleted.
	entries, err := s.All(ctx, []product.ID{"coins"})
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Count != 0 {
		t.Errorf("entries: got %+v, want one zero-count entry", entries)
	}
}

func TestExpireAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.Expire(ctx, "ghost"); err != nil {
		t.Fatalf("expire on absent id failed: %v", err)
	}
	entries, err := s.All(ctx, []product.ID{"ghost"})
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected no entry to be created, got %+v", entries)
	}
}

func TestCountAbsentIsZero(t *testing.T) {
	s, _ := openTestStore(t)

	got, err := s.Count(context.Background(), "never-purchased")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got != 0 {
		t.Errorf("count: got %d, want 0", got)
	}
}

func TestCountCorruptIsZero(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if _, err := s.DB().ExecContext(ctx,
		`INSERT INTO consumable_counts (product_id, count) VALUES ('coins', 'garbage')`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if got, _ := s.Count(ctx, "coins"); got != 0 {
		t.Errorf("corrupt entry should read as 0, got %d", got)
	}
}

func TestResetReportsRemovedIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.Purchase(ctx, "coins"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if err := s.Purchase(ctx, "gems"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	removed, err := s.Reset(ctx, []product.ID{"coins", "unknown"})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != "coins" {
		t.Errorf("removed: got %v, want [coins]", removed)
	}
	if got, _ := s.Count(ctx, "gems"); got != 1 {
		t.Errorf("unrelated count after reset: got %d, want 1", got)
	}
}

func TestCountsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Purchase(ctx, "coins"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	if got, _ := reopened.Count(ctx, "coins"); got != 1 {
		t.Errorf("count after reopen: got %d, want 1", got)
	}
}
