// Package storehelper provides an in-app purchase entitlement engine for
// Go applications.
//
// StoreHelper is designed as a library, not a service. It sits between an
// application and the platform commerce service (the appstore.Service
// interface) and keeps a trustworthy local answer to one question: which
// products is this user entitled to right now? It provides:
//
//   - A purchased-product set reconciled against verified platform
//     transactions
//   - A guarded purchase state machine (one purchase in flight at a time)
//   - A local ledger for consumable purchase counts (memory and SQLite)
//   - A persisted fallback entitlement list for storefront outages
//   - Subscription group and tier resolution from product-id conventions
//   - Cross-process purchase-flag publishing (memory and Redis)
//   - A plugin system with metrics and audit-trail extensions
//
// # Quick Start
//
// Create a helper on a platform service:
//
//	import (
//	    "github.com/quartzlabs/storehelper"
//	    "github.com/quartzlabs/storehelper/appstore/sandbox"
//	)
//
//	service := sandbox.New()
//	helper := storehelper.New(service,
//	    storehelper.WithProductIDs("com.app.gold", "com.app.coins"),
//	)
//
//	// Start the helper (loads the fallback list, begins the
//	// transaction listener, refreshes the catalog)
//	if err := helper.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer helper.Stop()
//
// Check entitlements and purchase:
//
//	purchased, err := helper.IsPurchased(ctx, "com.app.gold")
//
//	txn, state, err := helper.Purchase(ctx, p)
//	if state == storehelper.StatePurchased {
//	    // Unlock content
//	}
//
// # Trust Model
//
// Every transaction arrives wrapped in a verification result. A
// transaction that fails verification never unlocks content, is never
// acknowledged to the platform, and surfaces as
// ErrTransactionVerificationFailed at the call site that observed it.
// When the storefront is unreachable the helper answers from the
// persisted fallback list rather than denying all access.
//
// Consumable counts are local-only truth: the platform does not retain
// consumable transaction history, so the ledger in the consumable
// package is the only record of how many units the user still holds.
//
// # TypeID
//
// Transactions and store events use TypeID for globally unique,
// type-safe identifiers:
//
//	txn_01h2xcejqtf2nbrexx3vqjhp41   // Transaction ID
//	sevt_01h455vb4pex5vsknk084sn02q  // Store event ID
//
// TypeIDs are K-sortable, providing natural time-ordering of events.
package storehelper
