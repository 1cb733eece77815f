package repository

import "gorm.io/gorm"

// Repositories groups one repository per entity over a shared connection
type Repositories struct {
	Categories             *CategoryRepository
	Products               *ProductRepository
	Warehouses             *WarehouseRepository
	Employees              *EmployeeRepository
	Dependents             *DependentRepository
	Drivers                *DriverRepository
	Importers              *ImporterRepository
	ImporterPhones         *ImporterPhoneRepository
	Shipments              *ShipmentRepository
	Containers             *ContainerRepository
	ContainerProducts      *ContainerProductRepository
	Transportation         *TransportationRepository
	ShipmentTransportation *ShipmentLegRepository
	StatusHistory          *StatusHistoryRepository
	PaymentMethods         *PaymentMethodRepository
	Payments               *PaymentRepository
	Inventory              *InventoryRepository
}

// NewRepositories creates every repository over db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Categories:             NewCategoryRepository(db),
		Products:               NewProductRepository(db),
		Warehouses:             NewWarehouseRepository(db),
		Employees:              NewEmployeeRepository(db),
		Dependents:             NewDependentRepository(db),
		Drivers:                NewDriverRepository(db),
		Importers:              NewImporterRepository(db),
		ImporterPhones:         NewImporterPhoneRepository(db),
		Shipments:              NewShipmentRepository(db),
		Containers:             NewContainerRepository(db),
		ContainerProducts:      NewContainerProductRepository(db),
		Transportation:         NewTransportationRepository(db),
		ShipmentTransportation: NewShipmentLegRepository(db),
		StatusHistory:          NewStatusHistoryRepository(db),
		PaymentMethods:         NewPaymentMethodRepository(db),
		Payments:               NewPaymentRepository(db),
		Inventory:              NewInventoryRepository(db),
	}
}
