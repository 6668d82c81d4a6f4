package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quartzlabs/storehelper/product"
)

func writeProducts(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write products file: %v", err)
	}
	return path
}

func TestProductsPreservesOrder(t *testing.T) {
	path := writeProducts(t, `
products:
  - com.app.gold
  - com.app.silver
  - com.app.coins
`)

	got, err := Products(path)
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	want := []product.ID{"com.app.gold", "com.app.silver", "com.app.coins"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("products: got %v, want %v", got, want)
	}
}

func TestProductsDeduplicatesKeepingFirst(t *testing.T) {
	path := writeProducts(t, `
products:
  - com.app.gold
  - com.app.coins
  - com.app.gold
`)

	got, err := Products(path)
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	want := []product.ID{"com.app.gold", "com.app.coins"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("products: got %v, want %v", got, want)
	}
}

func TestProductsMissingFile(t *testing.T) {
	_, err := Products(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}

func TestProductsEmptyList(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"no products key", "other: value\n"},
		{"empty list", "products: []\n"},
		{"only blank entries", "products:\n  - \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Products(writeProducts(t, tt.contents))
			if !errors.Is(err, ErrEmpty) {
				t.Errorf("error: got %v, want ErrEmpty", err)
			}
		})
	}
}

func TestProductsCorruptYAML(t *testing.T) {
	_, err := Products(writeProducts(t, "products: [unclosed"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmpty) {
		t.Errorf("decode error should not match the sentinels, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	override := ProviderFunc(func(key Key) (string, bool) {
		if key == KeyAppGroupID {
			return "group.com.app", true
		}
		return "", false
	})

	tests := []struct {
		name     string
		provider Provider
		key      Key
		want     string
	}{
		{"provider answers", override, KeyAppGroupID, "group.com.app"},
		{"provider falls through", override, KeyContactUsURL, ""},
		{"nil provider", nil, KeyRequestRefundURL, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.provider, tt.key); got != tt.want {
				t.Errorf("resolve(%q): got %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
