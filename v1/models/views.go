package models

// Expansion names a supported relation expansion. Each one is resolved by a
// dedicated repository method issuing a single joined query.
type Expansion string

const (
	ExpandShipmentDetail   Expansion = "shipment_importer_warehouse_containers"
	ExpandEmployeeDetail   Expansion = "employee_warehouse_dependents"
	ExpandWarehouseDetail  Expansion = "warehouse_manager_employees"
	ExpandImporterDetail   Expansion = "importer_phones"
	ExpandDriverEmployee   Expansion = "driver_employee"
	ExpandPaymentMethod    Expansion = "payment_method"
	ExpandInventoryItem    Expansion = "inventory_product_warehouse"
	ExpandContainerProduct Expansion = "container_product"
	ExpandShipmentLeg      Expansion = "shipment_transportation_vehicle"
	ExpandProductCategory  Expansion = "product_category"
)

// ShipmentDetail is a shipment with its importer, destination warehouse and containers
type ShipmentDetail struct {
	Shipment
	Importer   *Importer   `json:"importer"`
	Warehouse  *Warehouse  `json:"warehouse"`
	Containers []Container `json:"containers"`
}

// EmployeeDetail is an employee with their warehouse and dependents
type EmployeeDetail struct {
	Employee
	Warehouse  *Warehouse  `json:"warehouse"`
	Dependents []Dependent `json:"dependents"`
}

// WarehouseDetail is a warehouse with its manager and staff
type WarehouseDetail struct {
	Warehouse
	Manager   *Employee  `json:"manager"`
	Employees []Employee `json:"employees"`
}

// ImporterDetail is an importer with its phone numbers
type ImporterDetail struct {
	Importer
	Phones []ImporterPhone `json:"phones"`
}

// DriverWithEmployee is a driver row joined with the employee it belongs to
type DriverWithEmployee struct {
	Driver
	Employee *Employee `json:"employee"`
}

// PaymentWithMethod is a payment row joined with its payment method
type PaymentWithMethod struct {
	Payment
	Method *PaymentMethod `json:"payment_method"`
}

// InventoryItem is a stock row joined with its product and warehouse
type InventoryItem struct {
	Inventory
	Product   *Product   `json:"product"`
	Warehouse *Warehouse `json:"warehouse"`
}

// ContainerProductLine is a container line joined with its product
type ContainerProductLine struct {
	ContainerProduct
	Product *Product `json:"product"`
}

// ShipmentLeg is a shipment transportation row joined with the vehicle
type ShipmentLeg struct {
	ShipmentTransportation
	Vehicle *Transportation `json:"transportation"`
}

// ProductWithCategory is a product joined with its category
type ProductWithCategory struct {
	Product
	Category *Category `json:"category"`
}
