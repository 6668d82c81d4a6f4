// Package subscription resolves subscription groups and tier ranking
// from the product-id naming convention.
//
// A subscription product id is dot-separated and contains the literal
// component "subscription" immediately followed by the group name, e.g.
// "com.app.subscription.vip.gold". Within a group, tier rank follows the
// configured catalog order: ids listed first are the more premium tiers.
package subscription

import (
	"context"
	"strings"

	"github.com/quartzlabs/storehelper/appstore"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/transaction"
)

// Info describes the highest currently-active subscription of a group.
type Info struct {
	// Product is the catalog entry the user is subscribed to.
	Product product.Product

	// Group is the subscription group name.
	Group string

	// LatestVerifiedTransaction is the most recent verified transaction
	// for the subscription, nil if none was available.
	LatestVerifiedTransaction *transaction.Transaction

	// RenewalInfo is the verified renewal information, nil if none was
	// available.
	RenewalInfo *transaction.RenewalInfo

	// Status is the platform status the info was resolved from.
	Status *appstore.SubscriptionStatus
}

// Owner is the non-owning reference back to the engine that created the
// helper. The owner outlives the helper.
type Owner interface {
	// SubscriptionProductIDs returns the configured auto-renewable
	// product ids in catalog order.
	SubscriptionProductIDs() []product.ID

	// SubscriptionInfo resolves the highest active subscription of a
	// group, nil when the group has no active subscription.
	SubscriptionInfo(ctx context.Context, group string) (*Info, error)
}

// Helper answers group and tier questions for an engine's configured
// subscriptions.
type Helper struct {
	owner Owner
}

// NewHelper creates a helper bound to its owning engine.
func NewHelper(owner Owner) *Helper {
	return &Helper{owner: owner}
}

// GroupName extracts the subscription group from a product id: the
// component immediately following the first case-insensitive
// "subscription" component. The second return is false when the id does
// not follow the naming convention.
func GroupName(productID product.ID) (string, bool) {
	parts := strings.Split(string(productID), ".")
	for i, part := range parts {
		if strings.EqualFold(part, "subscription") && i+1 < len(parts) {
			return parts[i+1], true
		}
	}
	return "", false
}

// Groups returns the distinct group names among the configured
// subscription ids, in discovery order.
func (h *Helper) Groups() []string {
	var groups []string
	seen := make(map[string]struct{})
	for _, pid := range h.owner.SubscriptionProductIDs() {
		group, ok := GroupName(pid)
		if !ok {
			continue
		}
		if _, dup := seen[group]; dup {
			continue
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}
	return groups
}

// SubscriptionsIn returns the configured ids of one group, in catalog
// order.
func (h *Helper) SubscriptionsIn(group string) []product.ID {
	var ids []product.ID
	for _, pid := range h.owner.SubscriptionProductIDs() {
		if g, ok := GroupName(pid); ok && g == group {
			ids = append(ids, pid)
		}
	}
	return ids
}

// ServiceLevel ranks a product id within its group. The last-listed id
// of a group has level 0 and earlier ids rank higher; an id not in the
// group resolves to -1, which compares lower than every valid level.
func (h *Helper) ServiceLevel(group string, productID product.ID) int {
	ids := h.SubscriptionsIn(group)
	for position, pid := range ids {
		if pid == productID {
			return len(ids) - 1 - position
		}
	}
	return -1
}

// GroupSubscriptionInfo resolves the top-tier active subscription for
// every configured group, one entry per group in discovery order. Groups
// without an active subscription contribute a nil entry.
func (h *Helper) GroupSubscriptionInfo(ctx context.Context) ([]*Info, error) {
	var infos []*Info
	for _, group := range h.Groups() {
		info, err := h.owner.SubscriptionInfo(ctx, group)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// InfoFor picks the resolved info matching p, nil when p's group has no
// entry or resolved to a different tier.
func InfoFor(p product.Product, infos []*Info) *Info {
	for _, info := range infos {
		if info != nil && info.Product.ID == p.ID {
			return info
		}
	}
	return nil
}
