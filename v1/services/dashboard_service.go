package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/pkg/monitoring"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/config"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
	"golang.org/x/sync/errgroup"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type shipmentSource interface {
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
	List(ctx context.Context, opts repository.ListOptions) ([]models.Shipment, error)
}

type warehouseSource interface {
	Count(ctx context.Context) (int64, error)
	StockLevels(ctx context.Context) ([]repository.WarehouseStock, error)
}

type paymentSource interface {
	Revenue(ctx context.Context) (decimal.Decimal, error)
	Summarize(ctx context.Context) ([]models.PaymentSummary, error)
}

type inventorySource interface {
	ListItems(ctx context.Context, opts repository.ListOptions) ([]models.InventoryItem, error)
}

// DashboardService computes the dashboard panels from several entities
type DashboardService struct {
	shipments  shipmentSource
	products   counter
	employees  counter
	warehouses warehouseSource
	payments   paymentSource
	containers counter
	inventory  inventorySource

	cache    *cache.Cache
	settings config.DashboardSettings
	now      func() time.Time
}

// NewDashboardService creates the aggregation service over repos
func NewDashboardService(repos *repository.Repositories, c *cache.Cache, settings config.DashboardSettings) *DashboardService {
	return &DashboardService{
		shipments:  repos.Shipments,
		products:   repos.Products,
		employees:  repos.Employees,
		warehouses: repos.Warehouses,
		payments:   repos.Payments,
		containers: repos.Containers,
		inventory:  repos.Inventory,
		cache:      c,
		settings:   settings,
		now:        time.Now,
	}
}

// StatsKey is the cache key of the headline statistics
func StatsKey() cache.Key {
	return cache.NewKey(events.ScopeDashboardStats)
}

// Stats returns the headline figures
func (d *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	return cache.Get(ctx, d.cache, StatsKey(), d.computeStats)
}

// WatchStats subscribes to the headline figures
func (d *DashboardService) WatchStats() *cache.Subscription {
	return d.cache.Subscribe(StatsKey(), cache.Adapt(d.computeStats))
}

// computeStats runs the six sub-queries concurrently. Any failure fails the
// whole aggregate with a PartialAggregationError naming the failed queries.
func (d *DashboardService) computeStats(ctx context.Context) (models.DashboardStats, error) {
	start := time.Now()

	var (
		totalShipments, activeShipments int64
		products, employees             int64
		warehouses, containers          int64
		revenue                         decimal.Decimal
	)

	subQueries := []struct {
		name string
		run  func(context.Context) error
	}{
		{"shipments", func(ctx context.Context) error {
			counts, err := d.shipments.CountByStatus(ctx)
			if err != nil {
				return err
			}
			for _, c := range counts {
				totalShipments += c.Count
				if c.Status.Active() {
					activeShipments += c.Count
				}
			}
			return nil
		}},
		{"products", countInto(d.products, &products)},
		{"employees", countInto(d.employees, &employees)},
		{"warehouses", countInto(d.warehouses, &warehouses)},
		{"payments", func(ctx context.Context) error {
			total, err := d.payments.Revenue(ctx)
			revenue = total
			return err
		}},
		{"containers", countInto(d.containers, &containers)},
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []apperrors.SubQueryFailure
	)
	for _, q := range subQueries {
		q := q
		g.Go(func() error {
			if err := q.run(ctx); err != nil {
				mu.Lock()
				failures = append(failures, apperrors.SubQueryFailure{Name: q.name, Err: err})
				mu.Unlock()
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool { return failures[i].Name < failures[j].Name })
		aggErr := &apperrors.PartialAggregationError{Aggregate: "dashboard_stats", Failures: failures}
		monitoring.RecordAggregation(ctx, "dashboard_stats", time.Since(start), aggErr.FailedQueries())
		return models.DashboardStats{}, aggErr
	}

	monitoring.RecordAggregation(ctx, "dashboard_stats", time.Since(start), nil)
	return models.DashboardStats{
		TotalShipments:  totalShipments,
		ActiveShipments: activeShipments,
		TotalProducts:   products,
		TotalEmployees:  employees,
		TotalWarehouses: warehouses,
		TotalContainers: containers,
		TotalRevenue:    revenue,
		GeneratedAt:     d.now().UTC(),
	}, nil
}

func countInto(c counter, dst *int64) func(context.Context) error {
	return func(ctx context.Context) error {
		n, err := c.Count(ctx)
		*dst = n
		return err
	}
}

// WarehouseOccupancy returns stored quantity against capacity per warehouse
func (d *DashboardService) WarehouseOccupancy(ctx context.Context) ([]models.WarehouseOccupancy, error) {
	return cache.Get(ctx, d.cache, cache.NewKey(events.ScopeDashboardOccupancy), func(ctx context.Context) ([]models.WarehouseOccupancy, error) {
		levels, err := d.warehouses.StockLevels(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.WarehouseOccupancy, 0, len(levels))
		for _, l := range levels {
			out = append(out, occupancy(l, d.settings.NearCapacityPercent))
		}
		return out, nil
	})
}

func occupancy(stock repository.WarehouseStock, nearCapacityPercent float64) models.WarehouseOccupancy {
	var percent float64
	if stock.Capacity > 0 {
		percent = roundOneDecimal(float64(stock.StoredQuantity) / float64(stock.Capacity) * 100)
	}
	return models.WarehouseOccupancy{
		Code:             stock.Code,
		Name:             stock.Name,
		City:             stock.City,
		Capacity:         stock.Capacity,
		StoredQuantity:   stock.StoredQuantity,
		OccupancyPercent: percent,
		NearCapacity:     stock.Capacity > 0 && percent >= nearCapacityPercent,
	}
}

// InventoryOverview returns the most recently updated stock lines annotated
// with a low-stock flag and a fill level
func (d *DashboardService) InventoryOverview(ctx context.Context) ([]models.InventoryOverviewItem, error) {
	return cache.Get(ctx, d.cache, cache.NewKey(events.ScopeDashboardInventory), func(ctx context.Context) ([]models.InventoryOverviewItem, error) {
		items, err := d.inventory.ListItems(ctx, repository.ListOptions{Limit: d.settings.InventoryOverviewLimit})
		if err != nil {
			return nil, err
		}
		out := make([]models.InventoryOverviewItem, 0, len(items))
		for _, it := range items {
			fill := 100.0
			if d.settings.ReferenceQuantity > 0 {
				fill = math.Min(roundOneDecimal(float64(it.Quantity)/float64(d.settings.ReferenceQuantity)*100), 100)
			}
			out = append(out, models.InventoryOverviewItem{
				InventoryItem: it,
				LowStock:      it.Quantity < d.settings.LowStockThreshold,
				FillPercent:   fill,
			})
		}
		return out, nil
	})
}

// RecentShipments returns the newest shipments
func (d *DashboardService) RecentShipments(ctx context.Context) ([]models.Shipment, error) {
	return cache.Get(ctx, d.cache, cache.NewKey(events.ScopeDashboardRecentShipments), func(ctx context.Context) ([]models.Shipment, error) {
		return d.shipments.List(ctx, repository.ListOptions{Limit: d.settings.RecentShipmentsLimit})
	})
}

// PaymentSummary returns payment totals grouped by status and currency
func (d *DashboardService) PaymentSummary(ctx context.Context) ([]models.PaymentSummary, error) {
	return cache.Get(ctx, d.cache, cache.NewKey(events.ScopeDashboardPaymentSummaries), d.payments.Summarize)
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
