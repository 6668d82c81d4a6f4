package storehelper_test

import (
	"context"
	"log"
	"log/slog"
	"testing"

	"github.com/quartzlabs/storehelper"
	"github.com/quartzlabs/storehelper/appstore/sandbox"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create a scriptable storefront (use the real platform bridge in
		// production)
		service := sandbox.New()
		service.SetCatalog(product.Catalog{
			{ID: "com.app.gold", Name: "Gold", Type: product.TypeNonConsumable, Price: types.USD(499)},
			{ID: "com.app.coins", Name: "Coins", Type: product.TypeConsumable, Price: types.USD(99)},
		})
		defer service.Close()

		// Initialize the helper
		helper := storehelper.New(service,
			storehelper.WithLogger(slog.Default()),
			storehelper.WithProductIDs("com.app.gold", "com.app.coins"),
		)

		// Start the engine
		ctx := context.Background()
		if err := helper.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer helper.Stop()

		// Purchase a product
		p, ok := helper.Product("com.app.gold")
		if !ok {
			t.Fatal("product missing from catalog")
		}
		txn, state, err := helper.Purchase(ctx, p)
		if err != nil {
			t.Fatal(err)
		}
		if state == storehelper.StatePurchased {
			log.Printf("purchased %s in transaction %s\n", p.ID, txn.ID)
		}

		// Check entitlement
		purchased, err := helper.IsPurchased(ctx, "com.app.gold")
		if err != nil {
			t.Fatal(err)
		}
		if !purchased {
			t.Fatal("expected gold to be purchased")
		}
	})

	// Test Money type examples
	t.Run("MoneyExamples", func(t *testing.T) {
		// Constructors
		_ = types.USD(499)    // $4.99
		_ = types.EUR(999)    // €9.99
		_ = types.Zero("usd") // $0.00

		// Arithmetic
		m1 := types.USD(100)
		m2 := types.USD(200)
		_ = m1.Add(m2)     // $3.00
		_ = m1.Multiply(3) // $3.00

		// Comparison
		if m1.LessThan(m2) {
			// m1 is less than m2
		}

		// Formatting
		_ = m1.String()      // "$1.00"
		_ = m1.FormatMajor() // "1.00"
	})
}
