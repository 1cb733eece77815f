package services

import (
	"context"

	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// ProductService serves products and the product-with-category view
type ProductService struct {
	*EntityService[models.Product, int64]
	repo *repository.ProductRepository
}

// ListWithCategory returns products joined with their category
func (s *ProductService) ListWithCategory(ctx context.Context, opts repository.ListOptions) ([]models.ProductWithCategory, error) {
	key := cache.NewKey(events.ScopeProductsWithCategory, opts.CacheParams()...)
	return cache.Get(ctx, s.cache, key, func(ctx context.Context) ([]models.ProductWithCategory, error) {
		return s.repo.ListWithCategory(ctx, opts)
	})
}

// WarehouseService serves warehouses and their detail view
type WarehouseService struct {
	*EntityService[models.Warehouse, string]
	repo *repository.WarehouseRepository
}

// GetDetail returns a warehouse with its manager and staff
func (s *WarehouseService) GetDetail(ctx context.Context, code string) (models.WarehouseDetail, error) {
	return cachedDetail(ctx, s.EntityService, code, s.repo.GetDetail)
}

// EmployeeService serves employees and their detail view
type EmployeeService struct {
	*EntityService[models.Employee, int64]
	repo *repository.EmployeeRepository
}

// GetDetail returns an employee with their warehouse and dependents
func (s *EmployeeService) GetDetail(ctx context.Context, ssn int64) (models.EmployeeDetail, error) {
	return cachedDetail(ctx, s.EntityService, ssn, s.repo.GetDetail)
}

// DependentService serves dependents
type DependentService struct {
	*EntityService[models.Dependent, models.DependentKey]
	repo *repository.DependentRepository
}

// ListByEmployee returns one employee's dependents
func (s *DependentService) ListByEmployee(ctx context.Context, ssn int64) ([]models.Dependent, error) {
	return cachedScoped(ctx, s.cache, events.ScopeDependentsByEmployee, ssn, s.repo.ListByEmployee)
}

// DriverService serves drivers and the driver-with-employee view
type DriverService struct {
	*EntityService[models.Driver, string]
	repo *repository.DriverRepository
}

// ListWithEmployee returns drivers joined with their employee record
func (s *DriverService) ListWithEmployee(ctx context.Context, opts repository.ListOptions) ([]models.DriverWithEmployee, error) {
	key := cache.NewKey(events.ScopeDriversWithEmployee, opts.CacheParams()...)
	return cache.Get(ctx, s.cache, key, func(ctx context.Context) ([]models.DriverWithEmployee, error) {
		return s.repo.ListWithEmployee(ctx, opts)
	})
}

// ImporterService serves importers and their detail view
type ImporterService struct {
	*EntityService[models.Importer, string]
	repo *repository.ImporterRepository
}

// GetDetail returns an importer with its phone numbers
func (s *ImporterService) GetDetail(ctx context.Context, isoCode string) (models.ImporterDetail, error) {
	return cachedDetail(ctx, s.EntityService, isoCode, s.repo.GetDetail)
}

// ImporterPhoneService serves importer phone numbers
type ImporterPhoneService struct {
	*EntityService[models.ImporterPhone, string]
	repo *repository.ImporterPhoneRepository
}

// ListByImporter returns one importer's phone numbers
func (s *ImporterPhoneService) ListByImporter(ctx context.Context, isoCode string) ([]models.ImporterPhone, error) {
	return cachedScoped(ctx, s.cache, events.ScopeImporterPhonesByImporter, isoCode, s.repo.ListByImporter)
}

// ContainerService serves containers
type ContainerService struct {
	*EntityService[models.Container, string]
	repo *repository.ContainerRepository
}

// ListByShipment returns the containers assigned to a shipment
func (s *ContainerService) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.Container, error) {
	return cachedScoped(ctx, s.cache, events.ScopeContainersByShipment, shipmentNo, s.repo.ListByShipment)
}

// ContainerProductService serves container contents
type ContainerProductService struct {
	*EntityService[models.ContainerProduct, models.ContainerProductKey]
	repo *repository.ContainerProductRepository
}

// ListByContainer returns one container's lines with their products
func (s *ContainerProductService) ListByContainer(ctx context.Context, containerNumber string) ([]models.ContainerProductLine, error) {
	return cachedScoped(ctx, s.cache, events.ScopeContainerProductLines, containerNumber, s.repo.ListByContainer)
}

// ShipmentLegService serves shipment transportation legs
type ShipmentLegService struct {
	*EntityService[models.ShipmentTransportation, models.ShipmentTransportationKey]
	repo *repository.ShipmentLegRepository
}

// ListByShipment returns a shipment's legs with their vehicles
func (s *ShipmentLegService) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.ShipmentLeg, error) {
	return cachedScoped(ctx, s.cache, events.ScopeShipmentLegs, shipmentNo, s.repo.ListByShipment)
}

// StatusHistoryService serves shipment status history
type StatusHistoryService struct {
	*EntityService[models.ShipmentStatusHistory, models.ShipmentStatusHistoryKey]
	repo *repository.StatusHistoryRepository
}

// ListByShipment returns a shipment's status changes, newest first
func (s *StatusHistoryService) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.ShipmentStatusHistory, error) {
	return cachedScoped(ctx, s.cache, events.ScopeStatusHistoryByShipment, shipmentNo, s.repo.ListByShipment)
}

// PaymentService serves payments and the payment-with-method view
type PaymentService struct {
	*EntityService[models.Payment, string]
	repo *repository.PaymentRepository
}

// ListWithMethod returns payments joined with their payment method
func (s *PaymentService) ListWithMethod(ctx context.Context, opts repository.ListOptions) ([]models.PaymentWithMethod, error) {
	key := cache.NewKey(events.ScopePaymentsWithMethod, opts.CacheParams()...)
	return cache.Get(ctx, s.cache, key, func(ctx context.Context) ([]models.PaymentWithMethod, error) {
		return s.repo.ListWithMethod(ctx, opts)
	})
}

// InventoryService serves stock levels
type InventoryService struct {
	*EntityService[models.Inventory, models.InventoryKey]
	repo *repository.InventoryRepository
}

// ListItems returns stock rows joined with product and warehouse
func (s *InventoryService) ListItems(ctx context.Context, opts repository.ListOptions) ([]models.InventoryItem, error) {
	key := cache.NewKey(events.ScopeInventoryItems, opts.CacheParams()...)
	return cache.Get(ctx, s.cache, key, func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.repo.ListItems(ctx, opts)
	})
}

// WatchItems subscribes to the inventory items view
func (s *InventoryService) WatchItems(opts repository.ListOptions) *cache.Subscription {
	key := cache.NewKey(events.ScopeInventoryItems, opts.CacheParams()...)
	return s.cache.Subscribe(key, cache.Adapt(func(ctx context.Context) ([]models.InventoryItem, error) {
		return s.repo.ListItems(ctx, opts)
	}))
}
