package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insert shapes carry the fields a caller supplies on create.
// Optional columns are pointers; store defaults are filled in on re-read.

type CategoryInsert struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (in CategoryInsert) ToRow() Category {
	return Category{ID: in.ID, Name: in.Name, Description: in.Description}
}

type ProductInsert struct {
	ID              int64            `json:"id" validate:"required,gt=0"`
	Name            string           `json:"name" validate:"required"`
	Description     *string          `json:"description"`
	Price           decimal.Decimal  `json:"price" validate:"money"`
	Currency        *string          `json:"currency"`
	Weight          *float64         `json:"weight" validate:"omitnil,gte=0"`
	HSCode          *int64           `json:"hs_code"`
	CountryOfOrigin *string          `json:"country_of_origin"`
	CustomsRate     *decimal.Decimal `json:"customs_rate" validate:"omitnil,money"`
	CategoryID      *int64           `json:"category_id"`
}

func (in ProductInsert) ToRow() Product {
	return Product{
		ID:              in.ID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Currency:        in.Currency,
		Weight:          in.Weight,
		HSCode:          in.HSCode,
		CountryOfOrigin: in.CountryOfOrigin,
		CustomsRate:     in.CustomsRate,
		CategoryID:      in.CategoryID,
	}
}

type WarehouseInsert struct {
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Capacity   int64  `json:"capacity" validate:"gte=0"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	ManagerSSN *int64 `json:"manager_ssn"`
}

func (in WarehouseInsert) ToRow() Warehouse {
	return Warehouse{
		Code:       in.Code,
		Name:       in.Name,
		Capacity:   in.Capacity,
		Address:    in.Address,
		City:       in.City,
		Country:    in.Country,
		Email:      in.Email,
		Phone:      in.Phone,
		ManagerSSN: in.ManagerSSN,
	}
}

type EmployeeInsert struct {
	SSN            int64            `json:"ssn" validate:"required,gt=0"`
	FirstName      string           `json:"first_name" validate:"required"`
	LastName       string           `json:"last_name" validate:"required"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	Sex            *string          `json:"sex"`
	Salary         *decimal.Decimal `json:"salary" validate:"omitnil,money"`
	HireDate       *Date            `json:"hire_date"`
	Birthdate      *Date            `json:"birthdate"`
	WarehousesCode *string          `json:"warehouses_code"`
}

func (in EmployeeInsert) ToRow() Employee {
	return Employee{
		SSN:            in.SSN,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Sex:            in.Sex,
		Salary:         in.Salary,
		HireDate:       in.HireDate,
		Birthdate:      in.Birthdate,
		WarehousesCode: in.WarehousesCode,
	}
}

type DependentInsert struct {
	EmployeeSSN  int64   `json:"employee_ssn" validate:"required,gt=0"`
	Name         string  `json:"name" validate:"required"`
	Relationship *string `json:"relationship"`
	Birthdate    *Date   `json:"birthdate"`
	Sex          *string `json:"sex"`
}

func (in DependentInsert) ToRow() Dependent {
	return Dependent{
		EmployeeSSN:  in.EmployeeSSN,
		Name:         in.Name,
		Relationship: in.Relationship,
		Birthdate:    in.Birthdate,
		Sex:          in.Sex,
	}
}

type DriverInsert struct {
	LicenseNumber string `json:"license_number" validate:"required"`
	LicenseType   string `json:"license_type" validate:"required"`
	EmployeeSSN   *int64 `json:"employee_ssn"`
}

func (in DriverInsert) ToRow() Driver {
	return Driver{LicenseNumber: in.LicenseNumber, LicenseType: in.LicenseType, EmployeeSSN: in.EmployeeSSN}
}

type ImporterInsert struct {
	ISOCode       string `json:"iso_code" validate:"required"`
	CompanyName   string `json:"company_name" validate:"required"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Country       string `json:"country" validate:"required"`
	City          string `json:"city" validate:"required"`
	Address       string `json:"address" validate:"required"`
	TaxID         string `json:"tax_id" validate:"required"`
}

func (in ImporterInsert) ToRow() Importer {
	return Importer{
		ISOCode:       in.ISOCode,
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Country:       in.Country,
		City:          in.City,
		Address:       in.Address,
		TaxID:         in.TaxID,
	}
}

type ImporterPhoneInsert struct {
	Code          string `json:"code" validate:"required"`
	Number        string `json:"number" validate:"required"`
	ImportersCode string `json:"importers_code" validate:"required"`
}

func (in ImporterPhoneInsert) ToRow() ImporterPhone {
	return ImporterPhone{Code: in.Code, Number: in.Number, ImportersCode: in.ImportersCode}
}

type ShipmentInsert struct {
	ShipmentNumber  int64          `json:"shipment_number" validate:"required,gt=0"`
	TrackingNumber  string         `json:"tracking_number" validate:"required"`
	OriginPort      string         `json:"origin_port" validate:"required"`
	DestinationPort string         `json:"destination_port" validate:"required"`
	ShipmentDate    Date           `json:"shipment_date" validate:"required"`
	ArrivalDate     Date           `json:"arrival_date" validate:"required"`
	Status          ShipmentStatus `json:"status" validate:"shipment_status"`
	TotalWeight     float64        `json:"total_weight" validate:"gte=0"`
	ImporterCode    *string        `json:"importer_code"`
	WarehouseCode   *string        `json:"warehouse_code"`
}

func (in ShipmentInsert) ToRow() Shipment {
	return Shipment{
		ShipmentNumber:  in.ShipmentNumber,
		TrackingNumber:  in.TrackingNumber,
		OriginPort:      in.OriginPort,
		DestinationPort: in.DestinationPort,
		ShipmentDate:    in.ShipmentDate,
		ArrivalDate:     in.ArrivalDate,
		Status:          in.Status,
		TotalWeight:     in.TotalWeight,
		ImporterCode:    in.ImporterCode,
		WarehouseCode:   in.WarehouseCode,
	}
}

type ContainerInsert struct {
	ContainerNumber string  `json:"container_number" validate:"required"`
	SealNumber      string  `json:"seal_number" validate:"required"`
	Weight          float64 `json:"weight" validate:"gte=0"`
	ShipmentNo      *int64  `json:"shipment_no"`
}

func (in ContainerInsert) ToRow() Container {
	return Container{
		ContainerNumber: in.ContainerNumber,
		SealNumber:      in.SealNumber,
		Weight:          in.Weight,
		ShipmentNo:      in.ShipmentNo,
	}
}

type ContainerProductInsert struct {
	ContainerNumber string `json:"container_number" validate:"required"`
	ProductID       int64  `json:"product_id" validate:"required,gt=0"`
	Quantity        int64  `json:"quantity" validate:"gte=0"`
}

func (in ContainerProductInsert) ToRow() ContainerProduct {
	return ContainerProduct{ContainerNumber: in.ContainerNumber, ProductID: in.ProductID, Quantity: in.Quantity}
}

type TransportationInsert struct {
	RegistrationNumber  string              `json:"registration_number" validate:"required"`
	Type                string              `json:"type" validate:"required"`
	State               TransportationState `json:"state" validate:"transportation_state"`
	CapacityWeight      float64             `json:"capacity_weight" validate:"gte=0"`
	DriverLicenseNumber *string             `json:"driver_license_number"`
}

func (in TransportationInsert) ToRow() Transportation {
	return Transportation{
		RegistrationNumber:  in.RegistrationNumber,
		Type:                in.Type,
		State:               in.State,
		CapacityWeight:      in.CapacityWeight,
		DriverLicenseNumber: in.DriverLicenseNumber,
	}
}

type ShipmentTransportationInsert struct {
	ShipmentNo       int64   `json:"shipment_no" validate:"required,gt=0"`
	TransportationNo string  `json:"transportation_no" validate:"required"`
	Checkpoint       *string `json:"checkpoint"`
}

func (in ShipmentTransportationInsert) ToRow() ShipmentTransportation {
	return ShipmentTransportation{ShipmentNo: in.ShipmentNo, TransportationNo: in.TransportationNo, Checkpoint: in.Checkpoint}
}

type ShipmentStatusHistoryInsert struct {
	ShipmentNo int64     `json:"shipment_no" validate:"required,gt=0"`
	ChangedAt  time.Time `json:"changed_at" validate:"required"`
	ChangerSSN int64     `json:"changer_ssn" validate:"required,gt=0"`
}

func (in ShipmentStatusHistoryInsert) ToRow() ShipmentStatusHistory {
	return ShipmentStatusHistory{ShipmentNo: in.ShipmentNo, ChangedAt: in.ChangedAt, ChangerSSN: in.ChangerSSN}
}

type PaymentMethodInsert struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	MethodName  string  `json:"method_name" validate:"required"`
	Description *string `json:"description"`
}

func (in PaymentMethodInsert) ToRow() PaymentMethod {
	return PaymentMethod{ID: in.ID, MethodName: in.MethodName, Description: in.Description}
}

type PaymentInsert struct {
	TransactionReference string          `json:"transaction_reference" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"money"`
	Currency             string          `json:"currency" validate:"required"`
	PaymentDate          Date            `json:"payment_date" validate:"required"`
	PaymentStatus        string          `json:"payment_status" validate:"required"`
	ShipmentNo           int64           `json:"shipment_no" validate:"required,gt=0"`
	PaymentMethodID      int64           `json:"payment_method_id" validate:"required,gt=0"`
}

func (in PaymentInsert) ToRow() Payment {
	return Payment{
		TransactionReference: in.TransactionReference,
		Amount:               in.Amount,
		Currency:             in.Currency,
		PaymentDate:          in.PaymentDate,
		PaymentStatus:        in.PaymentStatus,
		ShipmentNo:           in.ShipmentNo,
		PaymentMethodID:      in.PaymentMethodID,
	}
}

type InventoryInsert struct {
	ProductID           int64      `json:"product_id" validate:"required,gt=0"`
	WarehouseCode       string     `json:"warehouse_code" validate:"required"`
	Quantity            int64      `json:"quantity" validate:"gte=0"`
	LocationInWarehouse *string    `json:"location_in_warehouse"`
	LastUpdated         *time.Time `json:"last_updated"`
}

func (in InventoryInsert) ToRow() Inventory {
	row := Inventory{
		ProductID:           in.ProductID,
		WarehouseCode:       in.WarehouseCode,
		Quantity:            in.Quantity,
		LocationInWarehouse: in.LocationInWarehouse,
	}
	if in.LastUpdated != nil {
		row.LastUpdated = *in.LastUpdated
	}
	return row
}
