package events

import "github.com/tradelink-ops/logistics-backend/v1/models"

// Cache scopes shared by the services that fill the cache and the coordinator
// that invalidates it.

// ListScope holds every list variant (search, filter, sort) of an entity
func ListScope(e models.EntityName) string { return string(e) }

// RecordScope holds single rows keyed by primary key
func RecordScope(e models.EntityName) string { return string(e) + ":record" }

// DetailScope holds expanded single-row reads keyed by primary key
func DetailScope(e models.EntityName) string { return string(e) + ":detail" }

const (
	ScopeProductsWithCategory = "products:with-category"
	ScopeDriversWithEmployee  = "drivers:with-employee"
	ScopePaymentsWithMethod   = "payments:with-method"
	ScopeInventoryItems       = "inventory:items"

	ScopeContainersByShipment      = "containers:by-shipment"
	ScopeContainerProductLines     = "container_products:by-container"
	ScopeShipmentLegs              = "shipment_transportation:by-shipment"
	ScopeStatusHistoryByShipment   = "shipment_status_history:by-shipment"
	ScopeDependentsByEmployee      = "dependents:by-employee"
	ScopeImporterPhonesByImporter  = "importers_phone:by-importer"
	ScopeDashboardStats            = "dashboard:stats"
	ScopeDashboardOccupancy        = "dashboard:occupancy"
	ScopeDashboardInventory        = "dashboard:inventory"
	ScopeDashboardRecentShipments  = "dashboard:recent-shipments"
	ScopeDashboardPaymentSummaries = "dashboard:payments"
)

// dependents lists, per entity, the derived scopes whose results embed its rows.
// The entity's own list, record and detail scopes are always invalidated.
var dependents = map[models.EntityName][]string{
	models.EntityCategory: {ScopeProductsWithCategory},
	models.EntityProduct: {
		ScopeProductsWithCategory, ScopeInventoryItems, ScopeContainerProductLines,
		ScopeDashboardStats, ScopeDashboardInventory,
	},
	models.EntityWarehouse: {
		DetailScope(models.EntityEmployee), DetailScope(models.EntityShipment), ScopeInventoryItems,
		ScopeDashboardStats, ScopeDashboardOccupancy, ScopeDashboardInventory,
	},
	models.EntityEmployee: {
		DetailScope(models.EntityWarehouse), ScopeDriversWithEmployee, ScopeDashboardStats,
	},
	models.EntityDependent: {DetailScope(models.EntityEmployee), ScopeDependentsByEmployee},
	models.EntityDriver:    {ScopeDriversWithEmployee},
	models.EntityImporter:  {DetailScope(models.EntityShipment)},
	models.EntityImporterPhone: {
		DetailScope(models.EntityImporter), ScopeImporterPhonesByImporter,
	},
	models.EntityShipment: {ScopeDashboardStats, ScopeDashboardRecentShipments},
	models.EntityContainer: {
		DetailScope(models.EntityShipment), ScopeContainersByShipment, ScopeDashboardStats,
	},
	models.EntityContainerProduct:       {ScopeContainerProductLines},
	models.EntityTransportation:         {ScopeShipmentLegs},
	models.EntityShipmentTransportation: {ScopeShipmentLegs},
	models.EntityShipmentStatusHistory:  {ScopeStatusHistoryByShipment},
	models.EntityPaymentMethod:          {ScopePaymentsWithMethod},
	models.EntityPayment: {
		ScopePaymentsWithMethod, ScopeDashboardStats, ScopeDashboardPaymentSummaries,
	},
	models.EntityInventory: {
		ScopeInventoryItems, ScopeDashboardOccupancy, ScopeDashboardInventory,
	},
}

// DependentScopes returns the derived scopes invalidated when entity changes
func DependentScopes(entity models.EntityName) []string {
	return append([]string(nil), dependents[entity]...)
}
