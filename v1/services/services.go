package services

import (
	"time"

	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/config"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// Services groups the cached services of every entity and the dashboard
type Services struct {
	Categories             *EntityService[models.Category, int64]
	Products               *ProductService
	Warehouses             *WarehouseService
	Employees              *EmployeeService
	Dependents             *DependentService
	Drivers                *DriverService
	Importers              *ImporterService
	ImporterPhones         *ImporterPhoneService
	Shipments              *ShipmentService
	Containers             *ContainerService
	ContainerProducts      *ContainerProductService
	Transportation         *EntityService[models.Transportation, string]
	ShipmentTransportation *ShipmentLegService
	StatusHistory          *StatusHistoryService
	PaymentMethods         *EntityService[models.PaymentMethod, int64]
	Payments               *PaymentService
	Inventory              *InventoryService
	Dashboard              *DashboardService
}

// New wires every service over repos, sharing one cache and one publisher
func New(repos *repository.Repositories, c *cache.Cache, pub Publisher, cfg *config.Config) *Services {
	history := &StatusHistoryService{
		EntityService: NewEntityService[models.ShipmentStatusHistory, models.ShipmentStatusHistoryKey](repos.StatusHistory, c, pub,
			func(r models.ShipmentStatusHistory) models.ShipmentStatusHistoryKey {
				return models.ShipmentStatusHistoryKey{ShipmentNo: r.ShipmentNo, ChangedAt: r.ChangedAt}
			}),
		repo: repos.StatusHistory,
	}

	return &Services{
		Categories: NewEntityService[models.Category, int64](repos.Categories, c, pub,
			func(r models.Category) int64 { return r.ID }),
		Products: &ProductService{
			EntityService: NewEntityService[models.Product, int64](repos.Products, c, pub,
				func(r models.Product) int64 { return r.ID }),
			repo: repos.Products,
		},
		Warehouses: &WarehouseService{
			EntityService: NewEntityService[models.Warehouse, string](repos.Warehouses, c, pub,
				func(r models.Warehouse) string { return r.Code }),
			repo: repos.Warehouses,
		},
		Employees: &EmployeeService{
			EntityService: NewEntityService[models.Employee, int64](repos.Employees, c, pub,
				func(r models.Employee) int64 { return r.SSN }),
			repo: repos.Employees,
		},
		Dependents: &DependentService{
			EntityService: NewEntityService[models.Dependent, models.DependentKey](repos.Dependents, c, pub,
				func(r models.Dependent) models.DependentKey {
					return models.DependentKey{EmployeeSSN: r.EmployeeSSN, Name: r.Name}
				}),
			repo: repos.Dependents,
		},
		Drivers: &DriverService{
			EntityService: NewEntityService[models.Driver, string](repos.Drivers, c, pub,
				func(r models.Driver) string { return r.LicenseNumber }),
			repo: repos.Drivers,
		},
		Importers: &ImporterService{
			EntityService: NewEntityService[models.Importer, string](repos.Importers, c, pub,
				func(r models.Importer) string { return r.ISOCode }),
			repo: repos.Importers,
		},
		ImporterPhones: &ImporterPhoneService{
			EntityService: NewEntityService[models.ImporterPhone, string](repos.ImporterPhones, c, pub,
				func(r models.ImporterPhone) string { return r.Code }),
			repo: repos.ImporterPhones,
		},
		Shipments: &ShipmentService{
			EntityService: NewEntityService[models.Shipment, int64](repos.Shipments, c, pub,
				func(r models.Shipment) int64 { return r.ShipmentNumber }),
			repo:    repos.Shipments,
			history: history,
			now:     time.Now,
		},
		Containers: &ContainerService{
			EntityService: NewEntityService[models.Container, string](repos.Containers, c, pub,
				func(r models.Container) string { return r.ContainerNumber }),
			repo: repos.Containers,
		},
		ContainerProducts: &ContainerProductService{
			EntityService: NewEntityService[models.ContainerProduct, models.ContainerProductKey](repos.ContainerProducts, c, pub,
				func(r models.ContainerProduct) models.ContainerProductKey {
					return models.ContainerProductKey{ContainerNumber: r.ContainerNumber, ProductID: r.ProductID}
				}),
			repo: repos.ContainerProducts,
		},
		Transportation: NewEntityService[models.Transportation, string](repos.Transportation, c, pub,
			func(r models.Transportation) string { return r.RegistrationNumber }),
		ShipmentTransportation: &ShipmentLegService{
			EntityService: NewEntityService[models.ShipmentTransportation, models.ShipmentTransportationKey](repos.ShipmentTransportation, c, pub,
				func(r models.ShipmentTransportation) models.ShipmentTransportationKey {
					return models.ShipmentTransportationKey{ShipmentNo: r.ShipmentNo, TransportationNo: r.TransportationNo}
				}),
			repo: repos.ShipmentTransportation,
		},
		StatusHistory: history,
		PaymentMethods: NewEntityService[models.PaymentMethod, int64](repos.PaymentMethods, c, pub,
			func(r models.PaymentMethod) int64 { return r.ID }),
		Payments: &PaymentService{
			EntityService: NewEntityService[models.Payment, string](repos.Payments, c, pub,
				func(r models.Payment) string { return r.TransactionReference }),
			repo: repos.Payments,
		},
		Inventory: &InventoryService{
			EntityService: NewEntityService[models.Inventory, models.InventoryKey](repos.Inventory, c, pub,
				func(r models.Inventory) models.InventoryKey {
					return models.InventoryKey{ProductID: r.ProductID, WarehouseCode: r.WarehouseCode}
				}),
			repo: repos.Inventory,
		},
		Dashboard: NewDashboardService(repos, c, cfg.Dashboard),
	}
}
