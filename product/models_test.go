package product

import (
	"reflect"
	"testing"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: "com.app.gold", Type: TypeNonConsumable},
		{ID: "com.app.coins", Type: TypeConsumable},
		{ID: "com.app.subscription.vip.pro", Type: TypeAutoRenewable},
		{ID: "com.app.subscription.vip.basic", Type: TypeAutoRenewable},
		{ID: "com.app.season.pass", Type: TypeNonRenewing},
	}
}

func TestCatalogByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		p, ok := testCatalog().ByID("com.app.coins")
		if !ok {
			t.Fatal("expected product to be found")
		}
		if p.Type != TypeConsumable {
			t.Errorf("type = %q, want %q", p.Type, TypeConsumable)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, ok := testCatalog().ByID("com.app.unknown"); ok {
			t.Error("expected lookup to fail for unknown id")
		}
	})

	t.Run("DuplicateIDFails", func(t *testing.T) {
		c := append(testCatalog(), Product{ID: "com.app.gold", Type: TypeConsumable})
		if _, ok := c.ByID("com.app.gold"); ok {
			t.Error("expected lookup to fail when id appears twice")
		}
	})
}

func TestCatalogFilters(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name   string
		filter func() Catalog
		want   []ID
	}{
		{"Consumables", c.Consumables, []ID{"com.app.coins"}},
		{"NonConsumables", c.NonConsumables, []ID{"com.app.gold"}},
		{"Subscriptions", c.Subscriptions, []ID{"com.app.subscription.vip.pro", "com.app.subscription.vip.basic"}},
		{"NonRenewing", c.NonRenewing, []ID{"com.app.season.pass"}},
		{"NonSubscriptions", c.NonSubscriptions, []ID{"com.app.gold", "com.app.coins"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter().IDs()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalogIDs(t *testing.T) {
	if got := (Catalog{}).IDs(); got != nil {
		t.Errorf("empty catalog ids = %v, want nil", got)
	}

	want := []ID{
		"com.app.gold",
		"com.app.coins",
		"com.app.subscription.vip.pro",
		"com.app.subscription.vip.basic",
		"com.app.season.pass",
	}
	if got := testCatalog().IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestIsSubscription(t *testing.T) {
	for _, tt := range []struct {
		typ  Type
		want bool
	}{
		{TypeConsumable, false},
		{TypeNonConsumable, false},
		{TypeAutoRenewable, true},
		{TypeNonRenewing, true},
	} {
		if got := (Product{Type: tt.typ}).IsSubscription(); got != tt.want {
			t.Errorf("IsSubscription(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
