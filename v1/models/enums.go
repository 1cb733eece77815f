package models

// EntityName identifies a table; repositories, cache keys and change events all use it
type EntityName string

const (
	EntityCategory               EntityName = "categories"
	EntityProduct                EntityName = "products"
	EntityWarehouse              EntityName = "warehouses"
	EntityEmployee               EntityName = "employees"
	EntityDependent              EntityName = "dependents"
	EntityDriver                 EntityName = "drivers"
	EntityImporter               EntityName = "importers"
	EntityImporterPhone          EntityName = "importers_phone"
	EntityShipment               EntityName = "shipments"
	EntityContainer              EntityName = "containers"
	EntityContainerProduct       EntityName = "container_products"
	EntityTransportation         EntityName = "transportation"
	EntityShipmentTransportation EntityName = "shipment_transportation"
	EntityShipmentStatusHistory  EntityName = "shipment_status_history"
	EntityPaymentMethod          EntityName = "payment_methods"
	EntityPayment                EntityName = "payments"
	EntityInventory              EntityName = "inventory"
)

// String returns the table name
func (e EntityName) String() string {
	return string(e)
}

// AllEntities lists every entity in migration order
var AllEntities = []EntityName{
	EntityCategory,
	EntityProduct,
	EntityWarehouse,
	EntityEmployee,
	EntityDependent,
	EntityDriver,
	EntityImporter,
	EntityImporterPhone,
	EntityShipment,
	EntityContainer,
	EntityContainerProduct,
	EntityTransportation,
	EntityShipmentTransportation,
	EntityShipmentStatusHistory,
	EntityPaymentMethod,
	EntityPayment,
	EntityInventory,
}

// ShipmentStatus represents the lifecycle stage of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending    ShipmentStatus = "Pending"
	ShipmentStatusProcessing ShipmentStatus = "Processing"
	ShipmentStatusInTransit  ShipmentStatus = "In Transit"
	ShipmentStatusDelivered  ShipmentStatus = "Delivered"
)

// Valid reports whether s is one of the closed set of statuses
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusProcessing, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Active reports whether the shipment counts toward the dashboard's active shipments
func (s ShipmentStatus) Active() bool {
	return s == ShipmentStatusProcessing || s == ShipmentStatusInTransit
}

// TransportationState represents the availability of a vehicle
type TransportationState string

const (
	TransportationAvailable   TransportationState = "Available"
	TransportationInUse       TransportationState = "In Use"
	TransportationMaintenance TransportationState = "Maintenance"
)

// Valid reports whether s is one of the closed set of states
func (s TransportationState) Valid() bool {
	switch s {
	case TransportationAvailable, TransportationInUse, TransportationMaintenance:
		return true
	}
	return false
}
