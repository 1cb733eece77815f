package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents the categories table
type Category struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description *string `gorm:"column:description" json:"description"`
}

// TableName sets the table name for GORM
func (Category) TableName() string {
	return EntityCategory.String()
}

// Product represents the products table
type Product struct {
	ID              int64            `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name            string           `gorm:"column:name;not null" json:"name"`
	Description     *string          `gorm:"column:description" json:"description"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Currency        *string          `gorm:"column:currency" json:"currency"`
	Weight          *float64         `gorm:"column:weight" json:"weight"`
	HSCode          *int64           `gorm:"column:hs_code" json:"hs_code"`
	CountryOfOrigin *string          `gorm:"column:country_of_origin" json:"country_of_origin"`
	CustomsRate     *decimal.Decimal `gorm:"column:customs_rate;type:numeric(6,2)" json:"customs_rate"`
	CategoryID      *int64           `gorm:"column:category_id;index" json:"category_id"`
}

// TableName sets the table name for GORM
func (Product) TableName() string {
	return EntityProduct.String()
}

// Warehouse represents the warehouses table
type Warehouse struct {
	Code       string `gorm:"primaryKey;column:code" json:"code"`
	Name       string `gorm:"column:name;not null" json:"name"`
	Capacity   int64  `gorm:"column:capacity;not null" json:"capacity"`
	Address    string `gorm:"column:address;not null" json:"address"`
	City       string `gorm:"column:city;not null" json:"city"`
	Country    string `gorm:"column:country;not null" json:"country"`
	Email      string `gorm:"column:email;not null" json:"email"`
	Phone      string `gorm:"column:phone;not null" json:"phone"`
	ManagerSSN *int64 `gorm:"column:manager_ssn" json:"manager_ssn"`
}

// TableName sets the table name for GORM
func (Warehouse) TableName() string {
	return EntityWarehouse.String()
}

// Employee represents the employees table
type Employee struct {
	SSN            int64            `gorm:"primaryKey;autoIncrement:false;column:ssn" json:"ssn"`
	FirstName      string           `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string           `gorm:"column:last_name;not null;index" json:"last_name"`
	Email          string           `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone          *string          `gorm:"column:phone" json:"phone"`
	Address        *string          `gorm:"column:address" json:"address"`
	Sex            *string          `gorm:"column:sex" json:"sex"`
	Salary         *decimal.Decimal `gorm:"column:salary;type:numeric(12,2)" json:"salary"`
	HireDate       *Date            `gorm:"column:hire_date" json:"hire_date"`
	Birthdate      *Date            `gorm:"column:birthdate" json:"birthdate"`
	WarehousesCode *string          `gorm:"column:warehouses_code;index" json:"warehouses_code"`
}

// TableName sets the table name for GORM
func (Employee) TableName() string {
	return EntityEmployee.String()
}

// FullName joins first and last name
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Dependent represents the dependents table
type Dependent struct {
	EmployeeSSN  int64   `gorm:"primaryKey;autoIncrement:false;column:employee_ssn" json:"employee_ssn"`
	Name         string  `gorm:"primaryKey;column:name" json:"name"`
	Relationship *string `gorm:"column:relationship" json:"relationship"`
	Birthdate    *Date   `gorm:"column:birthdate" json:"birthdate"`
	Sex          *string `gorm:"column:sex" json:"sex"`
}

// TableName sets the table name for GORM
func (Dependent) TableName() string {
	return EntityDependent.String()
}

// Driver represents the drivers table
type Driver struct {
	LicenseNumber string `gorm:"primaryKey;column:license_number" json:"license_number"`
	LicenseType   string `gorm:"column:license_type;not null" json:"license_type"`
	EmployeeSSN   *int64 `gorm:"column:employee_ssn" json:"employee_ssn"`
}

// TableName sets the table name for GORM
func (Driver) TableName() string {
	return EntityDriver.String()
}

// Importer represents the importers table
type Importer struct {
	ISOCode       string `gorm:"primaryKey;column:iso_code" json:"iso_code"`
	CompanyName   string `gorm:"column:company_name;not null" json:"company_name"`
	ContactPerson string `gorm:"column:contact_person;not null" json:"contact_person"`
	Email         string `gorm:"column:email;not null" json:"email"`
	Country       string `gorm:"column:country;not null" json:"country"`
	City          string `gorm:"column:city;not null" json:"city"`
	Address       string `gorm:"column:address;not null" json:"address"`
	TaxID         string `gorm:"column:tax_id;not null;uniqueIndex" json:"tax_id"`
}

// TableName sets the table name for GORM
func (Importer) TableName() string {
	return EntityImporter.String()
}

// ImporterPhone represents the importers_phone table
type ImporterPhone struct {
	Code          string `gorm:"primaryKey;column:code" json:"code"`
	Number        string `gorm:"column:number;not null" json:"number"`
	ImportersCode string `gorm:"column:importers_code;not null;index" json:"importers_code"`
}

// TableName sets the table name for GORM
func (ImporterPhone) TableName() string {
	return EntityImporterPhone.String()
}

// Shipment represents the shipments table
type Shipment struct {
	ShipmentNumber  int64          `gorm:"primaryKey;autoIncrement:false;column:shipment_number" json:"shipment_number"`
	TrackingNumber  string         `gorm:"column:tracking_number;not null;uniqueIndex" json:"tracking_number"`
	OriginPort      string         `gorm:"column:origin_port;not null" json:"origin_port"`
	DestinationPort string         `gorm:"column:destination_port;not null" json:"destination_port"`
	ShipmentDate    Date           `gorm:"column:shipment_date;not null;index" json:"shipment_date"`
	ArrivalDate     Date           `gorm:"column:arrival_date;not null" json:"arrival_date"`
	Status          ShipmentStatus `gorm:"column:status;not null" json:"status"`
	TotalWeight     float64        `gorm:"column:total_weight;not null" json:"total_weight"`
	ImporterCode    *string        `gorm:"column:importer_code;index" json:"importer_code"`
	WarehouseCode   *string        `gorm:"column:warehouse_code;index" json:"warehouse_code"`
}

// TableName sets the table name for GORM
func (Shipment) TableName() string {
	return EntityShipment.String()
}

// Container represents the containers table
type Container struct {
	ContainerNumber string  `gorm:"primaryKey;column:container_number" json:"container_number"`
	SealNumber      string  `gorm:"column:seal_number;not null" json:"seal_number"`
	Weight          float64 `gorm:"column:weight;not null" json:"weight"`
	ShipmentNo      *int64  `gorm:"column:shipment_no;index" json:"shipment_no"`
}

// TableName sets the table name for GORM
func (Container) TableName() string {
	return EntityContainer.String()
}

// ContainerProduct represents the container_products table
type ContainerProduct struct {
	ContainerNumber string `gorm:"primaryKey;column:container_number" json:"container_number"`
	ProductID       int64  `gorm:"primaryKey;autoIncrement:false;column:product_id" json:"product_id"`
	Quantity        int64  `gorm:"column:quantity;not null" json:"quantity"`
}

// TableName sets the table name for GORM
func (ContainerProduct) TableName() string {
	return EntityContainerProduct.String()
}

// Transportation represents the transportation table
type Transportation struct {
	RegistrationNumber  string              `gorm:"primaryKey;column:registration_number" json:"registration_number"`
	Type                string              `gorm:"column:type;not null" json:"type"`
	State               TransportationState `gorm:"column:state;not null" json:"state"`
	CapacityWeight      float64             `gorm:"column:capacity_weight;not null" json:"capacity_weight"`
	DriverLicenseNumber *string             `gorm:"column:driver_license_number" json:"driver_license_number"`
}

// TableName sets the table name for GORM
func (Transportation) TableName() string {
	return EntityTransportation.String()
}

// ShipmentTransportation represents the shipment_transportation table
type ShipmentTransportation struct {
	ShipmentNo       int64   `gorm:"primaryKey;autoIncrement:false;column:shipment_no" json:"shipment_no"`
	TransportationNo string  `gorm:"primaryKey;column:transportation_no" json:"transportation_no"`
	Checkpoint       *string `gorm:"column:checkpoint" json:"checkpoint"`
}

// TableName sets the table name for GORM
func (ShipmentTransportation) TableName() string {
	return EntityShipmentTransportation.String()
}

// ShipmentStatusHistory represents the shipment_status_history table
type ShipmentStatusHistory struct {
	ShipmentNo int64     `gorm:"primaryKey;autoIncrement:false;column:shipment_no" json:"shipment_no"`
	ChangedAt  time.Time `gorm:"primaryKey;column:changed_at" json:"changed_at"`
	ChangerSSN int64     `gorm:"column:changer_ssn;not null" json:"changer_ssn"`
}

// TableName sets the table name for GORM
func (ShipmentStatusHistory) TableName() string {
	return EntityShipmentStatusHistory.String()
}

// PaymentMethod represents the payment_methods table
type PaymentMethod struct {
	ID          int64   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	MethodName  string  `gorm:"column:method_name;not null" json:"method_name"`
	Description *string `gorm:"column:description" json:"description"`
}

// TableName sets the table name for GORM
func (PaymentMethod) TableName() string {
	return EntityPaymentMethod.String()
}

// Payment represents the payments table
type Payment struct {
	TransactionReference string          `gorm:"primaryKey;column:transaction_reference" json:"transaction_reference"`
	Amount               decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	Currency             string          `gorm:"column:currency;not null" json:"currency"`
	PaymentDate          Date            `gorm:"column:payment_date;not null;index" json:"payment_date"`
	PaymentStatus        string          `gorm:"column:payment_status;not null" json:"payment_status"`
	ShipmentNo           int64           `gorm:"column:shipment_no;not null;index" json:"shipment_no"`
	PaymentMethodID      int64           `gorm:"column:payment_method_id;not null" json:"payment_method_id"`
}

// TableName sets the table name for GORM
func (Payment) TableName() string {
	return EntityPayment.String()
}

// Inventory represents the inventory table
type Inventory struct {
	ProductID           int64     `gorm:"primaryKey;autoIncrement:false;column:product_id" json:"product_id"`
	WarehouseCode       string    `gorm:"primaryKey;column:warehouse_code" json:"warehouse_code"`
	Quantity            int64     `gorm:"column:quantity;not null" json:"quantity"`
	LocationInWarehouse *string   `gorm:"column:location_in_warehouse" json:"location_in_warehouse"`
	LastUpdated         time.Time `gorm:"column:last_updated;not null;autoUpdateTime;index" json:"last_updated"`
}

// TableName sets the table name for GORM
func (Inventory) TableName() string {
	return EntityInventory.String()
}

// AllModels returns one zero value per table, used for migration
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Warehouse{},
		&Employee{},
		&Dependent{},
		&Driver{},
		&Importer{},
		&ImporterPhone{},
		&Shipment{},
		&Container{},
		&ContainerProduct{},
		&Transportation{},
		&ShipmentTransportation{},
		&ShipmentStatusHistory{},
		&PaymentMethod{},
		&Payment{},
		&Inventory{},
	}
}
