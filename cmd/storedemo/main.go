// Command storedemo runs a non-interactive walkthrough of the store
// helper against the in-process sandbox service: catalog refresh, a
// non-consumable purchase, consumable purchases and expiry, entitlement
// checks across product types, and subscription group info.
//
//	storedemo -products products.yaml -ledger ledger.db -fallback purchased.json
//	storedemo -redis localhost:6379
//
// Without flags the demo uses a built-in catalog and temporary files
// that are removed on exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quartzlabs/storehelper"
	"github.com/quartzlabs/storehelper/appstore"
	"github.com/quartzlabs/storehelper/appstore/sandbox"
	"github.com/quartzlabs/storehelper/audithook"
	"github.com/quartzlabs/storehelper/config"
	sqlitestore "github.com/quartzlabs/storehelper/consumable/sqlite"
	"github.com/quartzlabs/storehelper/fallback"
	redissync "github.com/quartzlabs/storehelper/groupsync/redis"
	"github.com/quartzlabs/storehelper/observability"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/subscription"
	"github.com/quartzlabs/storehelper/transaction"
	"github.com/quartzlabs/storehelper/types"
	"github.com/quartzlabs/storehelper/verify"
)

var demoProductIDs = []product.ID{
	"com.demo.gold",
	"com.demo.coins",
	"com.demo.subscription.vip.pro",
	"com.demo.subscription.vip.basic",
}

func main() {
	var (
		productsPath = flag.String("products", "", "products.yaml listing product ids (optional)")
		ledgerPath   = flag.String("ledger", "", "sqlite consumable ledger path (default: temp file)")
		fallbackPath = flag.String("fallback", "", "fallback entitlement list path (default: temp file)")
		redisAddr    = flag.String("redis", "", "redis address for the group-sync publisher (optional)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(context.Background(), logger, *productsPath, *ledgerPath, *fallbackPath, *redisAddr); err != nil {
		logger.Error("storedemo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, productsPath, ledgerPath, fallbackPath, redisAddr string) error {
	ids := demoProductIDs
	if productsPath != "" {
		loaded, err := config.Products(productsPath)
		if err != nil {
			return fmt.Errorf("load products file: %w", err)
		}
		ids = loaded
	}

	// Temporary storage for anything the flags left unset.
	if ledgerPath == "" || fallbackPath == "" {
		dir, err := os.MkdirTemp("", "storedemo")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		if ledgerPath == "" {
			ledgerPath = filepath.Join(dir, "ledger.db")
		}
		if fallbackPath == "" {
			fallbackPath = filepath.Join(dir, fallback.DefaultFilename)
		}
	}

	service := sandbox.New()
	catalog := buildCatalog(ids)
	service.SetCatalog(catalog)
	seedSubscriptionStatuses(service, catalog)

	ledger, err := sqlitestore.Open(ctx, ledgerPath)
	if err != nil {
		return fmt.Errorf("open consumable ledger: %w", err)
	}
	defer ledger.Close()

	metrics := &tallyFactory{}
	auditor := audithook.New(audithook.RecorderFunc(func(_ context.Context, event *audithook.AuditEvent) error {
		logger.Info("audit",
			"action", event.Action,
			"resource", event.Resource,
			"outcome", event.Outcome,
			"severity", event.Severity,
		)
		return nil
	}), audithook.WithLogger(logger))

	opts := []storehelper.Option{
		storehelper.WithLogger(logger),
		storehelper.WithProductIDs(ids...),
		storehelper.WithConsumableStore(ledger),
		storehelper.WithFallbackStore(fallback.NewFile(fallbackPath)),
		storehelper.WithPlugin(observability.NewMetricsExtension(metrics)),
		storehelper.WithPlugin(auditor),
	}

	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, continuing without group sync", "addr", redisAddr, "error", err)
		} else {
			opts = append(opts, storehelper.WithGroupSync(redissync.New(client)))
			defer client.Close()
		}
	}

	helper := storehelper.New(service, opts...)
	if err := helper.Start(ctx); err != nil {
		return fmt.Errorf("start helper: %w", err)
	}
	defer helper.Stop()

	for _, p := range helper.Products() {
		logger.Info("catalog product", "id", p.ID, "type", p.Type, "price", p.Price.String())
	}

	if err := walkthrough(ctx, logger, helper); err != nil {
		return err
	}

	for _, line := range metrics.report() {
		logger.Info("metric", "name", line.name, "value", line.value)
	}
	return nil
}

func walkthrough(ctx context.Context, logger *slog.Logger, helper *storehelper.Helper) error {
	if nonConsumables := helper.NonConsumableProducts(); len(nonConsumables) > 0 {
		p := nonConsumables[0]
		txn, state, err := helper.Purchase(ctx, p)
		if err != nil {
			return fmt.Errorf("purchase %s: %w", p.ID, err)
		}
		txnID := ""
		if txn != nil {
			txnID = txn.ID.String()
		}
		logger.Info("purchased non-consumable", "product", p.ID, "state", state, "transaction", txnID)
	}

	if consumables := helper.ConsumableProducts(); len(consumables) > 0 {
		p := consumables[0]
		for i := 0; i < 2; i++ {
			if _, _, err := helper.Purchase(ctx, p); err != nil {
				return fmt.Errorf("purchase %s: %w", p.ID, err)
			}
		}
		count, err := helper.ConsumableCount(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("count %s: %w", p.ID, err)
		}
		logger.Info("consumable balance after two purchases", "product", p.ID, "count", count)

		if err := helper.ExpireConsumable(ctx, p.ID); err != nil {
			return fmt.Errorf("expire %s: %w", p.ID, err)
		}
		count, err = helper.ConsumableCount(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("count %s: %w", p.ID, err)
		}
		logger.Info("consumable balance after expiry", "product", p.ID, "count", count)
	}

	for _, p := range helper.Products() {
		purchased, err := helper.IsPurchased(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("check %s: %w", p.ID, err)
		}
		logger.Info("entitlement", "product", p.ID, "type", p.Type, "purchased", purchased)
	}

	infos, err := helper.GroupSubscriptionInfo(ctx)
	if err != nil {
		return fmt.Errorf("group subscription info: %w", err)
	}
	for _, info := range infos {
		if info == nil {
			continue
		}
		state := appstore.RenewalState("")
		if info.Status != nil {
			state = info.Status.State
		}
		logger.Info("subscription group",
			"group", info.Group,
			"product", info.Product.ID,
			"state", state,
		)
	}
	return nil
}

// buildCatalog synthesizes localized products for the configured ids.
// A real app would receive these from the platform; the demo infers the
// type from the id so the walkthrough exercises every product kind.
func buildCatalog(ids []product.ID) product.Catalog {
	catalog := make(product.Catalog, 0, len(ids))
	for i, pid := range ids {
		p := product.Product{
			ID:    pid,
			Name:  displayName(pid),
			Type:  product.TypeNonConsumable,
			Price: types.USD(int64(199 + 100*i)),
		}
		if _, ok := subscription.GroupName(pid); ok {
			p.Type = product.TypeAutoRenewable
		} else if strings.Contains(string(pid), "coin") || strings.Contains(string(pid), "consumable") {
			p.Type = product.TypeConsumable
		}
		catalog = append(catalog, p)
	}
	return catalog
}

func displayName(pid product.ID) string {
	parts := strings.Split(string(pid), ".")
	last := parts[len(parts)-1]
	if last == "" {
		return string(pid)
	}
	return strings.ToUpper(last[:1]) + last[1:]
}

// seedSubscriptionStatuses marks the lowest tier of each subscription
// group as actively subscribed so the walkthrough has group info to show.
func seedSubscriptionStatuses(service *sandbox.Store, catalog product.Catalog) {
	groups := make(map[string][]product.ID)
	for _, p := range catalog.Subscriptions() {
		if group, ok := subscription.GroupName(p.ID); ok {
			groups[group] = append(groups[group], p.ID)
		}
	}
	for _, members := range groups {
		lowest := members[len(members)-1]
		txn := service.MintTransaction(lowest)
		status := appstore.SubscriptionStatus{
			State:       appstore.RenewalStateSubscribed,
			Transaction: verify.Verified(txn),
			RenewalInfo: verify.Verified(transaction.RenewalInfo{
				CurrentProductID: lowest,
				WillAutoRenew:    true,
			}),
		}
		service.SetSubscriptionStatus(members[0], []appstore.SubscriptionStatus{status})
	}
}

// ──────────────────────────────────────────────────
// In-process metric sink
// ──────────────────────────────────────────────────

type tallyFactory struct {
	mu     sync.Mutex
	values map[string]float64
}

func (t *tallyFactory) Counter(name string) observability.Counter {
	return &tallyMetric{factory: t, name: name}
}

func (t *tallyFactory) Histogram(name string) observability.Histogram {
	return &tallyMetric{factory: t, name: name}
}

func (t *tallyFactory) add(name string, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.values == nil {
		t.values = make(map[string]float64)
	}
	t.values[name] += v
}

func (t *tallyFactory) set(name string, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.values == nil {
		t.values = make(map[string]float64)
	}
	t.values[name] = v
}

type metricLine struct {
	name  string
	value float64
}

func (t *tallyFactory) report() []metricLine {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]metricLine, 0, len(t.values))
	for name, value := range t.values {
		lines = append(lines, metricLine{name: name, value: value})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })
	return lines
}

type tallyMetric struct {
	factory *tallyFactory
	name    string
}

func (m *tallyMetric) Inc()              { m.factory.add(m.name, 1) }
func (m *tallyMetric) Add(v float64)     { m.factory.add(m.name, v) }
func (m *tallyMetric) Observe(v float64) { m.factory.set(m.name, v) }
