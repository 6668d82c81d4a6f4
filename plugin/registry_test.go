package plugin

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recorderPlugin struct {
	name       string
	initCalls  int
	checks     []string
	refreshErr error
}

func (p *recorderPlugin) Name() string { return p.name }

func (p *recorderPlugin) OnInit(context.Context, interface{}) error {
	p.initCalls++
	return nil
}

func (p *recorderPlugin) OnEntitlementChecked(_ context.Context, productID string, _ bool) error {
	p.checks = append(p.checks, productID)
	return nil
}

func (p *recorderPlugin) OnCatalogRefreshed(context.Context, int, time.Duration) error {
	return p.refreshErr
}

type namedPlugin struct{ name string }

func (p namedPlugin) Name() string { return p.name }

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(namedPlugin{name: "metrics"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(namedPlugin{name: "metrics"}); err == nil {
		t.Fatal("duplicate name should be rejected")
	}
	if r.Count() != 1 {
		t.Errorf("count: got %d, want 1", r.Count())
	}
}

func TestEmitReachesOnlyImplementers(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	rec := &recorderPlugin{name: "recorder"}
	if err := r.Register(rec); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(namedPlugin{name: "bare"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	r.EmitInit(ctx, nil)
	r.EmitEntitlementChecked(ctx, "com.app.gold", true)
	r.EmitEntitlementChecked(ctx, "com.app.coins", false)

	if rec.initCalls != 1 {
		t.Errorf("init calls: got %d, want 1", rec.initCalls)
	}
	if len(rec.checks) != 2 || rec.checks[0] != "com.app.gold" {
		t.Errorf("checks: got %v", rec.checks)
	}
}

func TestHookFailureDoesNotStopDispatch(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	failing := &recorderPlugin{name: "failing", refreshErr: errors.New("boom")}
	healthy := &recorderPlugin{name: "healthy"}
	if err := r.Register(failing); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(healthy); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// A failing hook is logged and skipped without affecting others.
	r.EmitCatalogRefreshed(ctx, 3, time.Millisecond)
	r.EmitEntitlementChecked(ctx, "com.app.gold", true)

	if len(healthy.checks) != 1 {
		t.Errorf("healthy plugin should still receive events, got %v", healthy.checks)
	}
}

func TestGetAndList(t *testing.T) {
	r := NewRegistry()
	p := namedPlugin{name: "audit"}
	if err := r.Register(p); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if got := r.Get("audit"); got == nil {
		t.Error("get should find the registered plugin")
	}
	if got := r.Get("absent"); got != nil {
		t.Error("get should return nil for unknown names")
	}
	if got := r.List(); len(got) != 1 {
		t.Errorf("list: got %d plugins, want 1", len(got))
	}
}
