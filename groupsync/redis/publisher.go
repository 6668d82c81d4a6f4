// Package redis provides a Redis-backed groupsync publisher, for setups
// where companion processes run on other hosts.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quartzlabs/storehelper/groupsync"
	"github.com/quartzlabs/storehelper/product"
)

// DefaultKeyPrefix namespaces purchase flags in a shared Redis instance.
const DefaultKeyPrefix = "storehelper:purchased"

// compile-time interface check
var _ groupsync.Publisher = (*Publisher)(nil)

// Publisher implements groupsync.Publisher on a Redis client.
type Publisher struct {
	client *redis.Client
	prefix string
}

// New creates a publisher on an existing client using DefaultKeyPrefix.
func New(client *redis.Client) *Publisher {
	return NewWithPrefix(client, DefaultKeyPrefix)
}

// NewWithPrefix creates a publisher with a custom key prefix.
func NewWithPrefix(client *redis.Client, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

func (p *Publisher) SetPurchased(ctx context.Context, productID product.ID, purchased bool) error {
	value := "0"
	if purchased {
		value = "1"
	}
	if err := p.client.Set(ctx, p.key(productID), value, 0).Err(); err != nil {
		return fmt.Errorf("groupsync/redis: set %s: %w", productID, err)
	}
	return nil
}

func (p *Publisher) IsPurchased(ctx context.Context, productID product.ID) (bool, error) {
	value, err := p.client.Get(ctx, p.key(productID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("groupsync/redis: get %s: %w", productID, err)
	}
	return value == "1", nil
}

func (p *Publisher) key(productID product.ID) string {
	return p.prefix + ":" + string(productID)
}
