package models

import (
	"fmt"
	"strings"
	"time"
)

// DependentKey identifies a dependent by employee and name
type DependentKey struct {
	EmployeeSSN int64  `json:"employee_ssn"`
	Name        string `json:"name"`
}

func (k DependentKey) IsZero() bool   { return k.EmployeeSSN == 0 || strings.TrimSpace(k.Name) == "" }
func (k DependentKey) String() string { return fmt.Sprintf("%d/%s", k.EmployeeSSN, k.Name) }

// ContainerProductKey identifies a product line within a container
type ContainerProductKey struct {
	ContainerNumber string `json:"container_number"`
	ProductID       int64  `json:"product_id"`
}

func (k ContainerProductKey) IsZero() bool {
	return strings.TrimSpace(k.ContainerNumber) == "" || k.ProductID == 0
}
func (k ContainerProductKey) String() string {
	return fmt.Sprintf("%s/%d", k.ContainerNumber, k.ProductID)
}

// ShipmentTransportationKey identifies one leg of a shipment
type ShipmentTransportationKey struct {
	ShipmentNo       int64  `json:"shipment_no"`
	TransportationNo string `json:"transportation_no"`
}

func (k ShipmentTransportationKey) IsZero() bool {
	return k.ShipmentNo == 0 || strings.TrimSpace(k.TransportationNo) == ""
}
func (k ShipmentTransportationKey) String() string {
	return fmt.Sprintf("%d/%s", k.ShipmentNo, k.TransportationNo)
}

// ShipmentStatusHistoryKey identifies one recorded status change of a shipment
type ShipmentStatusHistoryKey struct {
	ShipmentNo int64     `json:"shipment_no"`
	ChangedAt  time.Time `json:"changed_at"`
}

func (k ShipmentStatusHistoryKey) IsZero() bool { return k.ShipmentNo == 0 || k.ChangedAt.IsZero() }
func (k ShipmentStatusHistoryKey) String() string {
	return fmt.Sprintf("%d/%s", k.ShipmentNo, k.ChangedAt.UTC().Format(time.RFC3339Nano))
}

// InventoryKey identifies the stock of one product in one warehouse
type InventoryKey struct {
	ProductID     int64  `json:"product_id"`
	WarehouseCode string `json:"warehouse_code"`
}

func (k InventoryKey) IsZero() bool {
	return k.ProductID == 0 || strings.TrimSpace(k.WarehouseCode) == ""
}
func (k InventoryKey) String() string { return fmt.Sprintf("%d/%s", k.ProductID, k.WarehouseCode) }
