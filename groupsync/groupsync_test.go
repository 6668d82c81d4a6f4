package groupsync

import (
	"context"
	"testing"
)

func TestNoopReadsFalse(t *testing.T) {
	ctx := context.Background()
	p := Noop()

	if err := p.SetPurchased(ctx, "com.app.gold", true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := p.IsPurchased(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got {
		t.Errorf("noop publisher should always read false")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemory()

	if got, _ := p.IsPurchased(ctx, "com.app.gold"); got {
		t.Errorf("unwritten flag should read false")
	}

	if err := p.SetPurchased(ctx, "com.app.gold", true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := p.IsPurchased(ctx, "com.app.gold"); !got {
		t.Errorf("flag should read true after set")
	}

	if err := p.SetPurchased(ctx, "com.app.gold", false); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := p.IsPurchased(ctx, "com.app.gold"); got {
		t.Errorf("flag should read false after revoke")
	}
}
