package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Update shapes list every non-key column as optional. Key columns are
// deliberately absent: changing a key means creating a new entity.
// Changes returns only the supplied columns, keyed by column name.

type CategoryUpdate struct {
	Name        *string          `json:"name" validate:"omitnil,min=1"`
	Description Nullable[string] `json:"description"`
}

func (u CategoryUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "name", u.Name)
	setNullable(c, "description", u.Description)
	return c
}

type ProductUpdate struct {
	Name            *string                   `json:"name" validate:"omitnil,min=1"`
	Description     Nullable[string]          `json:"description"`
	Price           *decimal.Decimal          `json:"price" validate:"omitnil,money"`
	Currency        Nullable[string]          `json:"currency"`
	Weight          Nullable[float64]         `json:"weight"`
	HSCode          Nullable[int64]           `json:"hs_code"`
	CountryOfOrigin Nullable[string]          `json:"country_of_origin"`
	CustomsRate     Nullable[decimal.Decimal] `json:"customs_rate"`
	CategoryID      Nullable[int64]           `json:"category_id"`
}

func (u ProductUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "name", u.Name)
	setNullable(c, "description", u.Description)
	setField(c, "price", u.Price)
	setNullable(c, "currency", u.Currency)
	setNullable(c, "weight", u.Weight)
	setNullable(c, "hs_code", u.HSCode)
	setNullable(c, "country_of_origin", u.CountryOfOrigin)
	setNullable(c, "customs_rate", u.CustomsRate)
	setNullable(c, "category_id", u.CategoryID)
	return c
}

type WarehouseUpdate struct {
	Name       *string         `json:"name" validate:"omitnil,min=1"`
	Capacity   *int64          `json:"capacity" validate:"omitnil,gte=0"`
	Address    *string         `json:"address"`
	City       *string         `json:"city"`
	Country    *string         `json:"country"`
	Email      *string         `json:"email" validate:"omitnil,email"`
	Phone      *string         `json:"phone"`
	ManagerSSN Nullable[int64] `json:"manager_ssn"`
}

func (u WarehouseUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "name", u.Name)
	setField(c, "capacity", u.Capacity)
	setField(c, "address", u.Address)
	setField(c, "city", u.City)
	setField(c, "country", u.Country)
	setField(c, "email", u.Email)
	setField(c, "phone", u.Phone)
	setNullable(c, "manager_ssn", u.ManagerSSN)
	return c
}

type EmployeeUpdate struct {
	FirstName      *string                   `json:"first_name" validate:"omitnil,min=1"`
	LastName       *string                   `json:"last_name" validate:"omitnil,min=1"`
	Email          *string                   `json:"email" validate:"omitnil,email"`
	Phone          Nullable[string]          `json:"phone"`
	Address        Nullable[string]          `json:"address"`
	Sex            Nullable[string]          `json:"sex"`
	Salary         Nullable[decimal.Decimal] `json:"salary"`
	HireDate       Nullable[Date]            `json:"hire_date"`
	Birthdate      Nullable[Date]            `json:"birthdate"`
	WarehousesCode Nullable[string]          `json:"warehouses_code"`
}

func (u EmployeeUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "first_name", u.FirstName)
	setField(c, "last_name", u.LastName)
	setField(c, "email", u.Email)
	setNullable(c, "phone", u.Phone)
	setNullable(c, "address", u.Address)
	setNullable(c, "sex", u.Sex)
	setNullable(c, "salary", u.Salary)
	setNullable(c, "hire_date", u.HireDate)
	setNullable(c, "birthdate", u.Birthdate)
	setNullable(c, "warehouses_code", u.WarehousesCode)
	return c
}

type DependentUpdate struct {
	Relationship Nullable[string] `json:"relationship"`
	Birthdate    Nullable[Date]   `json:"birthdate"`
	Sex          Nullable[string] `json:"sex"`
}

func (u DependentUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setNullable(c, "relationship", u.Relationship)
	setNullable(c, "birthdate", u.Birthdate)
	setNullable(c, "sex", u.Sex)
	return c
}

type DriverUpdate struct {
	LicenseType *string         `json:"license_type" validate:"omitnil,min=1"`
	EmployeeSSN Nullable[int64] `json:"employee_ssn"`
}

func (u DriverUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "license_type", u.LicenseType)
	setNullable(c, "employee_ssn", u.EmployeeSSN)
	return c
}

type ImporterUpdate struct {
	CompanyName   *string `json:"company_name" validate:"omitnil,min=1"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email" validate:"omitnil,email"`
	Country       *string `json:"country"`
	City          *string `json:"city"`
	Address       *string `json:"address"`
	TaxID         *string `json:"tax_id" validate:"omitnil,min=1"`
}

func (u ImporterUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "company_name", u.CompanyName)
	setField(c, "contact_person", u.ContactPerson)
	setField(c, "email", u.Email)
	setField(c, "country", u.Country)
	setField(c, "city", u.City)
	setField(c, "address", u.Address)
	setField(c, "tax_id", u.TaxID)
	return c
}

type ImporterPhoneUpdate struct {
	Number        *string `json:"number" validate:"omitnil,min=1"`
	ImportersCode *string `json:"importers_code" validate:"omitnil,min=1"`
}

func (u ImporterPhoneUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "number", u.Number)
	setField(c, "importers_code", u.ImportersCode)
	return c
}

type ShipmentUpdate struct {
	TrackingNumber  *string          `json:"tracking_number" validate:"omitnil,min=1"`
	OriginPort      *string          `json:"origin_port"`
	DestinationPort *string          `json:"destination_port"`
	ShipmentDate    *Date            `json:"shipment_date"`
	ArrivalDate     *Date            `json:"arrival_date"`
	Status          *ShipmentStatus  `json:"status" validate:"omitnil,shipment_status"`
	TotalWeight     *float64         `json:"total_weight" validate:"omitnil,gte=0"`
	ImporterCode    Nullable[string] `json:"importer_code"`
	WarehouseCode   Nullable[string] `json:"warehouse_code"`
}

func (u ShipmentUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "tracking_number", u.TrackingNumber)
	setField(c, "origin_port", u.OriginPort)
	setField(c, "destination_port", u.DestinationPort)
	setField(c, "shipment_date", u.ShipmentDate)
	setField(c, "arrival_date", u.ArrivalDate)
	setField(c, "status", u.Status)
	setField(c, "total_weight", u.TotalWeight)
	setNullable(c, "importer_code", u.ImporterCode)
	setNullable(c, "warehouse_code", u.WarehouseCode)
	return c
}

type ContainerUpdate struct {
	SealNumber *string         `json:"seal_number" validate:"omitnil,min=1"`
	Weight     *float64        `json:"weight" validate:"omitnil,gte=0"`
	ShipmentNo Nullable[int64] `json:"shipment_no"`
}

func (u ContainerUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "seal_number", u.SealNumber)
	setField(c, "weight", u.Weight)
	setNullable(c, "shipment_no", u.ShipmentNo)
	return c
}

type ContainerProductUpdate struct {
	Quantity *int64 `json:"quantity" validate:"omitnil,gte=0"`
}

func (u ContainerProductUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "quantity", u.Quantity)
	return c
}

type TransportationUpdate struct {
	Type                *string              `json:"type" validate:"omitnil,min=1"`
	State               *TransportationState `json:"state" validate:"omitnil,transportation_state"`
	CapacityWeight      *float64             `json:"capacity_weight" validate:"omitnil,gte=0"`
	DriverLicenseNumber Nullable[string]     `json:"driver_license_number"`
}

func (u TransportationUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "type", u.Type)
	setField(c, "state", u.State)
	setField(c, "capacity_weight", u.CapacityWeight)
	setNullable(c, "driver_license_number", u.DriverLicenseNumber)
	return c
}

type ShipmentTransportationUpdate struct {
	Checkpoint Nullable[string] `json:"checkpoint"`
}

func (u ShipmentTransportationUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setNullable(c, "checkpoint", u.Checkpoint)
	return c
}

type ShipmentStatusHistoryUpdate struct {
	ChangerSSN *int64 `json:"changer_ssn" validate:"omitnil,gt=0"`
}

func (u ShipmentStatusHistoryUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "changer_ssn", u.ChangerSSN)
	return c
}

type PaymentMethodUpdate struct {
	MethodName  *string          `json:"method_name" validate:"omitnil,min=1"`
	Description Nullable[string] `json:"description"`
}

func (u PaymentMethodUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "method_name", u.MethodName)
	setNullable(c, "description", u.Description)
	return c
}

type PaymentUpdate struct {
	Amount          *decimal.Decimal `json:"amount" validate:"omitnil,money"`
	Currency        *string          `json:"currency" validate:"omitnil,min=1"`
	PaymentDate     *Date            `json:"payment_date"`
	PaymentStatus   *string          `json:"payment_status" validate:"omitnil,min=1"`
	ShipmentNo      *int64           `json:"shipment_no" validate:"omitnil,gt=0"`
	PaymentMethodID *int64           `json:"payment_method_id" validate:"omitnil,gt=0"`
}

func (u PaymentUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "amount", u.Amount)
	setField(c, "currency", u.Currency)
	setField(c, "payment_date", u.PaymentDate)
	setField(c, "payment_status", u.PaymentStatus)
	setField(c, "shipment_no", u.ShipmentNo)
	setField(c, "payment_method_id", u.PaymentMethodID)
	return c
}

type InventoryUpdate struct {
	Quantity            *int64           `json:"quantity" validate:"omitnil,gte=0"`
	LocationInWarehouse Nullable[string] `json:"location_in_warehouse"`
	LastUpdated         *time.Time       `json:"last_updated"`
}

func (u InventoryUpdate) Changes() map[string]interface{} {
	c := changeSet{}
	setField(c, "quantity", u.Quantity)
	setNullable(c, "location_in_warehouse", u.LocationInWarehouse)
	setField(c, "last_updated", u.LastUpdated)
	return c
}
