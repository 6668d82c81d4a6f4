package storehelper

import (
	"github.com/quartzlabs/storehelper/id"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/types"
)

// Re-export common types for convenience so users don't have to import
// the leaf packages.

// Money is re-exported from the types package.
type Money = types.Money

// Re-export Money constructors
var (
	USD  = types.USD
	EUR  = types.EUR
	GBP  = types.GBP
	JPY  = types.JPY
	CNY  = types.CNY
	Zero = types.Zero
)

// ProductID is re-exported from the product package.
type ProductID = product.ID

// Product is re-exported from the product package.
type Product = product.Product

// ID is the primary identifier type for transactions and events.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
