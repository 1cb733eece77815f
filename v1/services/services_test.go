package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/config"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// recordingPublisher forwards to the bus and remembers what was published
type recordingPublisher struct {
	bus *events.Bus
	mu  sync.Mutex
	got []events.EntityChanged
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.EntityChanged) {
	p.mu.Lock()
	p.got = append(p.got, ev)
	p.mu.Unlock()
	p.bus.Publish(ctx, ev)
}

func (p *recordingPublisher) published() []events.EntityChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.EntityChanged(nil), p.got...)
}

type harness struct {
	repos *repository.Repositories
	cache *cache.Cache
	pub   *recordingPublisher
	svc   *Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := repository.SetupSQLiteTestDB(t)
	repos := repository.NewRepositories(db)

	c := cache.New(cache.Options{})
	t.Cleanup(c.Close)

	bus := events.NewBus(16)
	events.NewCoordinator(c).Register(bus)
	ctx, cancel := context.WithCancel(context.Background())
	go bus.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-bus.Done()
	})

	pub := &recordingPublisher{bus: bus}
	return &harness{repos: repos, cache: c, pub: pub, svc: New(repos, c, pub, config.Default())}
}

func newShipment(number int64, tracking string, status models.ShipmentStatus) models.ShipmentInsert {
	return models.ShipmentInsert{
		ShipmentNumber:  number,
		TrackingNumber:  tracking,
		OriginPort:      "Shanghai",
		DestinationPort: "Rotterdam",
		ShipmentDate:    models.NewDate(2024, time.March, int(number)),
		ArrivalDate:     models.NewDate(2024, time.April, int(number)),
		Status:          status,
		TotalWeight:     900,
	}
}

func newPayment(ref string, amount int64, shipmentNo int64) models.PaymentInsert {
	return models.PaymentInsert{
		TransactionReference: ref,
		Amount:               decimal.NewFromInt(amount),
		Currency:             "USD",
		PaymentDate:          models.NewDate(2024, time.May, 1),
		PaymentStatus:        "Completed",
		ShipmentNo:           shipmentNo,
		PaymentMethodID:      1,
	}
}

func shipmentsOf(t *testing.T, snap cache.Snapshot) []models.Shipment {
	t.Helper()
	if !snap.HasValue {
		return nil
	}
	rows, ok := snap.Value.([]models.Shipment)
	require.True(t, ok, "unexpected snapshot value %T", snap.Value)
	return rows
}

func TestShipmentService_CreateRefreshesSubscribedList(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sub := h.svc.Shipments.WatchList(repository.ListOptions{})
	defer sub.Close()

	require.Eventually(t, func() bool {
		return sub.Current().Status == cache.StatusFresh
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, shipmentsOf(t, sub.Current()))

	_, err := h.svc.Shipments.Create(ctx, newShipment(1, "TRK-1", models.ShipmentStatusPending))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap := sub.Current()
		return snap.Status == cache.StatusFresh && len(shipmentsOf(t, snap)) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "TRK-1", shipmentsOf(t, sub.Current())[0].TrackingNumber)
}

func TestEntityService_FailedUpdateLeavesCacheAndPublishesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// seeded through the repository so no change event is in flight
	_, err := h.repos.Shipments.Create(ctx, newShipment(1, "TRK-1", models.ShipmentStatusPending))
	require.NoError(t, err)

	rows, err := h.svc.Shipments.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	weight := 10.0
	_, err = h.svc.Shipments.Update(ctx, 404, models.ShipmentUpdate{TotalWeight: &weight})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	assert.Empty(t, h.pub.published())
	snap, ok := h.cache.Peek(h.svc.Shipments.ListKey(repository.ListOptions{}))
	require.True(t, ok)
	assert.Equal(t, cache.StatusFresh, snap.Status)
	assert.Len(t, shipmentsOf(t, snap), 1)
}

func TestEntityService_ZeroKeySkipsCacheAndStore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Shipments.Get(ctx, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, ok := h.cache.Peek(h.svc.Shipments.RecordKey(0))
	assert.False(t, ok)

	containers, err := h.svc.Containers.ListByShipment(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, containers)
}

func TestEntityService_BlankKeysLeaveNoCacheEntry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Warehouses.Get(ctx, "   ")
	assert.True(t, apperrors.IsNotFound(err))
	_, ok := h.cache.Peek(h.svc.Warehouses.RecordKey("   "))
	assert.False(t, ok)

	half := models.DependentKey{EmployeeSSN: 5}
	_, err = h.svc.Dependents.Get(ctx, half)
	assert.True(t, apperrors.IsNotFound(err))
	_, ok = h.cache.Peek(h.svc.Dependents.RecordKey(half))
	assert.False(t, ok)

	_, err = h.svc.Importers.GetDetail(ctx, " ")
	assert.True(t, apperrors.IsNotFound(err))
	_, ok = h.cache.Peek(cache.NewKey(events.DetailScope(models.EntityImporter), " "))
	assert.False(t, ok)

	phones, err := h.svc.ImporterPhones.ListByImporter(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, phones)
	_, ok = h.cache.Peek(cache.NewKey(events.ScopeImporterPhonesByImporter, "  "))
	assert.False(t, ok)
}

func TestStatusHistoryService_GetsOneChangeOfAShipment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)
	for _, in := range []models.ShipmentStatusHistoryInsert{
		{ShipmentNo: 9, ChangedAt: first, ChangerSSN: 11},
		{ShipmentNo: 9, ChangedAt: second, ChangerSSN: 22},
	} {
		_, err := h.svc.StatusHistory.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := h.svc.StatusHistory.Get(ctx, models.ShipmentStatusHistoryKey{ShipmentNo: 9, ChangedAt: first})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ChangerSSN)

	got, err = h.svc.StatusHistory.Get(ctx, models.ShipmentStatusHistoryKey{ShipmentNo: 9, ChangedAt: second})
	require.NoError(t, err)
	assert.Equal(t, int64(22), got.ChangerSSN)
}

func TestEntityService_GetIsCachedUntilUpdated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Shipments.Create(ctx, newShipment(7, "TRK-7", models.ShipmentStatusPending))
	require.NoError(t, err)

	got, err := h.svc.Shipments.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got.TotalWeight)

	weight := 1250.0
	_, err = h.svc.Shipments.Update(ctx, 7, models.ShipmentUpdate{TotalWeight: &weight})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := h.svc.Shipments.Get(ctx, 7)
		return err == nil && got.TotalWeight == 1250.0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShipmentService_StatusChangeIsRecorded(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	changedAt := time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)
	h.svc.Shipments.now = func() time.Time { return changedAt }

	_, err := h.svc.Shipments.Create(ctx, newShipment(3, "TRK-3", models.ShipmentStatusPending))
	require.NoError(t, err)

	status := models.ShipmentStatusInTransit
	updated, err := h.svc.Shipments.UpdateByEmployee(ctx, 3, models.ShipmentUpdate{Status: &status}, 42)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentStatusInTransit, updated.Status)

	history, err := h.repos.StatusHistory.ListByShipment(ctx, 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(42), history[0].ChangerSSN)
	assert.True(t, changedAt.Equal(history[0].ChangedAt))

	// same status again records nothing
	_, err = h.svc.Shipments.UpdateByEmployee(ctx, 3, models.ShipmentUpdate{Status: &status}, 42)
	require.NoError(t, err)
	history, err = h.repos.StatusHistory.ListByShipment(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestShipmentService_UpdateWithoutChangerRecordsNoHistory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Shipments.Create(ctx, newShipment(4, "TRK-4", models.ShipmentStatusPending))
	require.NoError(t, err)

	status := models.ShipmentStatusDelivered
	_, err = h.svc.Shipments.UpdateByEmployee(ctx, 4, models.ShipmentUpdate{Status: &status}, 0)
	require.NoError(t, err)

	history, err := h.repos.StatusHistory.ListByShipment(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDashboardService_Stats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for i, status := range []models.ShipmentStatus{
		models.ShipmentStatusPending,
		models.ShipmentStatusInTransit,
		models.ShipmentStatusProcessing,
		models.ShipmentStatusDelivered,
	} {
		n := int64(i + 1)
		_, err := h.svc.Shipments.Create(ctx, newShipment(n, "TRK-"+string(rune('A'+i)), status))
		require.NoError(t, err)
	}
	for _, p := range []models.PaymentInsert{
		newPayment("PAY-1", 100, 1),
		newPayment("PAY-2", 250, 2),
		newPayment("PAY-3", 0, 3),
	} {
		_, err := h.svc.Payments.Create(ctx, p)
		require.NoError(t, err)
	}

	stats, err := h.svc.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalShipments)
	assert.Equal(t, int64(2), stats.ActiveShipments)
	assert.True(t, decimal.NewFromInt(350).Equal(stats.TotalRevenue), "revenue %s", stats.TotalRevenue)
	assert.Zero(t, stats.TotalProducts)
	assert.False(t, stats.GeneratedAt.IsZero())
}

type countStub struct {
	n   int64
	err error
}

func (c countStub) Count(context.Context) (int64, error) { return c.n, c.err }

type shipmentStub struct {
	counts []repository.StatusCount
	err    error
}

func (s shipmentStub) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	return s.counts, s.err
}

func (s shipmentStub) List(context.Context, repository.ListOptions) ([]models.Shipment, error) {
	return nil, s.err
}

type warehouseStub struct {
	countStub
	levels []repository.WarehouseStock
}

func (w warehouseStub) StockLevels(context.Context) ([]repository.WarehouseStock, error) {
	return w.levels, w.err
}

type paymentStub struct {
	revenue decimal.Decimal
	err     error
}

func (p paymentStub) Revenue(context.Context) (decimal.Decimal, error) { return p.revenue, p.err }

func (p paymentStub) Summarize(context.Context) ([]models.PaymentSummary, error) { return nil, p.err }

type inventoryStub struct {
	items []models.InventoryItem
	opts  *repository.ListOptions
}

func (s inventoryStub) ListItems(_ context.Context, opts repository.ListOptions) ([]models.InventoryItem, error) {
	if s.opts != nil {
		*s.opts = opts
	}
	return s.items, nil
}

func newStubDashboard(t *testing.T) *DashboardService {
	t.Helper()
	c := cache.New(cache.Options{})
	t.Cleanup(c.Close)
	return &DashboardService{
		shipments: shipmentStub{counts: []repository.StatusCount{
			{Status: models.ShipmentStatusInTransit, Count: 3},
			{Status: models.ShipmentStatusDelivered, Count: 2},
		}},
		products:   countStub{n: 10},
		employees:  countStub{n: 4},
		warehouses: warehouseStub{countStub: countStub{n: 2}},
		payments:   paymentStub{revenue: decimal.NewFromInt(99)},
		containers: countStub{n: 6},
		inventory:  inventoryStub{},
		cache:      c,
		settings:   config.DefaultDashboard,
		now:        time.Now,
	}
}

func TestDashboardService_StatsFromAllSubQueries(t *testing.T) {
	d := newStubDashboard(t)

	stats, err := d.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalShipments)
	assert.Equal(t, int64(3), stats.ActiveShipments)
	assert.Equal(t, int64(10), stats.TotalProducts)
	assert.Equal(t, int64(4), stats.TotalEmployees)
	assert.Equal(t, int64(2), stats.TotalWarehouses)
	assert.Equal(t, int64(6), stats.TotalContainers)
	assert.True(t, decimal.NewFromInt(99).Equal(stats.TotalRevenue))
}

func TestDashboardService_StatsNamesFailedSubQueries(t *testing.T) {
	d := newStubDashboard(t)
	boom := errors.New("connection reset")
	d.payments = paymentStub{err: boom}
	d.containers = countStub{err: boom}

	_, err := d.Stats(context.Background())
	require.Error(t, err)

	agg, ok := apperrors.AsPartialAggregation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"containers", "payments"}, agg.FailedQueries())
	assert.ErrorIs(t, err, boom)
}

func TestOccupancy(t *testing.T) {
	tests := []struct {
		name    string
		stock   repository.WarehouseStock
		percent float64
		near    bool
	}{
		{"partly filled", repository.WarehouseStock{Capacity: 1000, StoredQuantity: 850}, 85, true},
		{"below threshold", repository.WarehouseStock{Capacity: 1000, StoredQuantity: 799}, 79.9, false},
		{"rounded", repository.WarehouseStock{Capacity: 3, StoredQuantity: 1}, 33.3, false},
		{"over capacity", repository.WarehouseStock{Capacity: 100, StoredQuantity: 120}, 120, true},
		{"no capacity", repository.WarehouseStock{Capacity: 0, StoredQuantity: 50}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := occupancy(tt.stock, 80)
			assert.InDelta(t, tt.percent, got.OccupancyPercent, 0.001)
			assert.Equal(t, tt.near, got.NearCapacity)
		})
	}
}

func TestDashboardService_WarehouseOccupancy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Warehouses.Create(ctx, models.WarehouseInsert{
		Code: "WH1", Name: "North", Capacity: 1000, Address: "1 Dock Road",
		City: "Hamburg", Country: "DE", Email: "ops@wh1.example", Phone: "+49 40 000",
	})
	require.NoError(t, err)
	for _, inv := range []models.InventoryInsert{
		{ProductID: 1, WarehouseCode: "WH1", Quantity: 600},
		{ProductID: 2, WarehouseCode: "WH1", Quantity: 250},
	} {
		_, err := h.svc.Inventory.Create(ctx, inv)
		require.NoError(t, err)
	}

	got, err := h.svc.Dashboard.WarehouseOccupancy(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(850), got[0].StoredQuantity)
	assert.InDelta(t, 85.0, got[0].OccupancyPercent, 0.001)
	assert.True(t, got[0].NearCapacity)
}

func TestDashboardService_InventoryOverview(t *testing.T) {
	d := newStubDashboard(t)
	var seen repository.ListOptions
	d.inventory = inventoryStub{
		opts: &seen,
		items: []models.InventoryItem{
			{Inventory: models.Inventory{ProductID: 1, WarehouseCode: "WH1", Quantity: 50}},
			{Inventory: models.Inventory{ProductID: 2, WarehouseCode: "WH1", Quantity: 100}},
			{Inventory: models.Inventory{ProductID: 3, WarehouseCode: "WH1", Quantity: 1500}},
		},
	}

	got, err := d.InventoryOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, config.DefaultDashboard.InventoryOverviewLimit, seen.Limit)

	assert.True(t, got[0].LowStock)
	assert.InDelta(t, 5.0, got[0].FillPercent, 0.001)
	assert.False(t, got[1].LowStock)
	assert.InDelta(t, 10.0, got[1].FillPercent, 0.001)
	assert.InDelta(t, 100.0, got[2].FillPercent, 0.001)
}
