package sandbox

import (
	"context"
	"errors"
	"testing"

	"github.com/quartzlabs/storehelper/appstore"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/transaction"
	"github.com/quartzlabs/storehelper/types"
	"github.com/quartzlabs/storehelper/verify"
)

func testCatalog() product.Catalog {
	return product.Catalog{
		{ID: "com.app.gold", Name: "Gold", Type: product.TypeNonConsumable, Price: types.USD(499)},
		{ID: "com.app.coins", Name: "Coins", Type: product.TypeConsumable, Price: types.USD(99)},
		{ID: "com.app.subscription.vip.pro", Name: "Pro", Type: product.TypeAutoRenewable, Price: types.USD(999)},
	}
}

func TestProductsFiltersUnknownIDs(t *testing.T) {
	s := New()
	s.SetCatalog(testCatalog())

	got, err := s.Products(context.Background(), []product.ID{"com.app.coins", "com.app.missing", "com.app.gold"})
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("products: got %d entries, want 2", len(got))
	}
	if got[0].ID != "com.app.coins" || got[1].ID != "com.app.gold" {
		t.Errorf("unexpected order: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestProductsUnavailable(t *testing.T) {
	s := New()
	s.SetCatalog(testCatalog())
	s.SetAvailable(false)

	if _, err := s.Products(context.Background(), []product.ID{"com.app.gold"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("error: got %v, want ErrUnavailable", err)
	}
}

func TestPurchaseDefaultsToVerifiedSuccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCatalog(testCatalog())

	result, err := s.Purchase(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if result.Outcome != appstore.OutcomeSuccess {
		t.Fatalf("outcome: got %v, want success", result.Outcome)
	}
	if result.Verification == nil || !result.Verification.IsVerified() {
		t.Fatal("expected a verified transaction")
	}
	txn := result.Verification.Unwrap().Value
	if txn.ProductID != "com.app.gold" || txn.ProductType != product.TypeNonConsumable {
		t.Errorf("unexpected transaction: %+v", txn)
	}

	// A successful purchase becomes the current entitlement.
	ent, err := s.CurrentEntitlement(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("entitlement lookup failed: %v", err)
	}
	if ent == nil {
		t.Fatal("expected an entitlement after purchase")
	}
}

func TestPurchaseUnknownProduct(t *testing.T) {
	s := New()
	s.SetCatalog(testCatalog())

	if _, err := s.Purchase(context.Background(), "com.app.missing"); !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("error: got %v, want ErrUnknownProduct", err)
	}
}

func TestQueuedOutcomesConsumedInOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCatalog(testCatalog())

	s.QueuePurchaseResult("com.app.gold", appstore.PurchaseResult{Outcome: appstore.OutcomeCancelled})
	s.QueuePurchaseError("com.app.gold", errors.New("card declined"))

	first, err := s.Purchase(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	if first.Outcome != appstore.OutcomeCancelled {
		t.Errorf("first outcome: got %v, want cancelled", first.Outcome)
	}

	if _, err := s.Purchase(ctx, "com.app.gold"); err == nil {
		t.Fatal("second purchase should surface the scripted error")
	}

	// Queue drained, back to the default verified success.
	third, err := s.Purchase(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("third purchase failed: %v", err)
	}
	if third.Outcome != appstore.OutcomeSuccess {
		t.Errorf("third outcome: got %v, want success", third.Outcome)
	}
}

func TestCurrentEntitlementsStreamsInGrantOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCatalog(testCatalog())

	s.GrantEntitlement(verify.Verified(s.MintTransaction("com.app.gold")))
	s.GrantEntitlement(verify.Verified(s.MintTransaction("com.app.subscription.vip.pro")))

	var ids []product.ID
	for result := range s.CurrentEntitlements(ctx) {
		ids = append(ids, result.Unwrap().Value.ProductID)
	}
	if len(ids) != 2 || ids[0] != "com.app.gold" || ids[1] != "com.app.subscription.vip.pro" {
		t.Errorf("unexpected entitlement order: %v", ids)
	}
}

func TestRevokeEntitlement(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCatalog(testCatalog())

	s.GrantEntitlement(verify.Verified(s.MintTransaction("com.app.gold")))
	s.RevokeEntitlement("com.app.gold")

	ent, err := s.CurrentEntitlement(ctx, "com.app.gold")
	if err != nil {
		t.Fatalf("entitlement lookup failed: %v", err)
	}
	if ent != nil {
		t.Error("expected no entitlement after revoke")
	}
}

func TestTransactionUpdatesForwardInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New()
	s.SetCatalog(testCatalog())

	first := verify.Verified(s.MintTransaction("com.app.gold"))
	second := verify.Unverified(s.MintTransaction("com.app.coins"), verify.ErrInvalidSignature)
	s.PushUpdate(first)
	s.PushUpdate(second)
	s.Close()

	var got []verify.Result[transaction.Transaction]
	for result := range s.TransactionUpdates(ctx) {
		got = append(got, result)
	}
	if len(got) != 2 {
		t.Fatalf("updates: got %d, want 2", len(got))
	}
	if !got[0].IsVerified() || got[1].IsVerified() {
		t.Error("verification flags arrived out of order")
	}
}

func TestFinishRecordsIDs(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCatalog(testCatalog())

	txn := s.MintTransaction("com.app.gold")
	if err := s.Finish(ctx, txn.ID); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	finished := s.Finished()
	if len(finished) != 1 || finished[0] != txn.ID {
		t.Errorf("finished: got %v, want [%v]", finished, txn.ID)
	}
}
