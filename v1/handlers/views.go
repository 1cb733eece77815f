package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	"github.com/tradelink-ops/logistics-backend/v1/models"
)

func dependentKey(r *http.Request) (models.DependentKey, error) {
	ssn, err := intParam(r, "ssn")
	if err != nil {
		return models.DependentKey{}, err
	}
	return models.DependentKey{EmployeeSSN: ssn, Name: chi.URLParam(r, "name")}, nil
}

func containerProductKey(r *http.Request) (models.ContainerProductKey, error) {
	product, err := intParam(r, "product")
	if err != nil {
		return models.ContainerProductKey{}, err
	}
	return models.ContainerProductKey{ContainerNumber: chi.URLParam(r, "container"), ProductID: product}, nil
}

func shipmentLegKey(r *http.Request) (models.ShipmentTransportationKey, error) {
	shipment, err := intParam(r, "shipment")
	if err != nil {
		return models.ShipmentTransportationKey{}, err
	}
	return models.ShipmentTransportationKey{ShipmentNo: shipment, TransportationNo: chi.URLParam(r, "transportation")}, nil
}

func inventoryKey(r *http.Request) (models.InventoryKey, error) {
	product, err := intParam(r, "product")
	if err != nil {
		return models.InventoryKey{}, err
	}
	return models.InventoryKey{ProductID: product, WarehouseCode: chi.URLParam(r, "warehouse")}, nil
}

// updateShipment applies a shipment update, recording a status change
// against the employee named in the changer header
func (h *Handler) updateShipment(r *http.Request, number int64, in models.ShipmentUpdate) (models.Shipment, error) {
	changer, err := changerSSN(r)
	if err != nil {
		return models.Shipment{}, errBadRequest{err}
	}
	return h.svc.Shipments.UpdateByEmployee(r.Context(), number, in, changer)
}

// errBadRequest marks a request error found after the body was read
type errBadRequest struct{ error }

func (e errBadRequest) Unwrap() error { return e.error }

func (h *Handler) shipmentDetail(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	detail, err := h.svc.Shipments.GetDetail(r.Context(), number)
	respond(w, r, http.StatusOK, detail, err)
}

func (h *Handler) shipmentContainers(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Containers.ListByShipment(r.Context(), number)
	respondList(w, r, rows, err)
}

func (h *Handler) shipmentLegs(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.ShipmentTransportation.ListByShipment(r.Context(), number)
	respondList(w, r, rows, err)
}

func (h *Handler) shipmentHistory(w http.ResponseWriter, r *http.Request) {
	number, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.StatusHistory.ListByShipment(r.Context(), number)
	respondList(w, r, rows, err)
}

func (h *Handler) warehouseDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Warehouses.GetDetail(r.Context(), chi.URLParam(r, "key"))
	respond(w, r, http.StatusOK, detail, err)
}

func (h *Handler) employeeDetail(w http.ResponseWriter, r *http.Request) {
	ssn, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	detail, err := h.svc.Employees.GetDetail(r.Context(), ssn)
	respond(w, r, http.StatusOK, detail, err)
}

func (h *Handler) employeeDependents(w http.ResponseWriter, r *http.Request) {
	ssn, err := intParam(r, "key")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Dependents.ListByEmployee(r.Context(), ssn)
	respondList(w, r, rows, err)
}

func (h *Handler) importerDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Importers.GetDetail(r.Context(), chi.URLParam(r, "key"))
	respond(w, r, http.StatusOK, detail, err)
}

func (h *Handler) importerPhones(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ImporterPhones.ListByImporter(r.Context(), chi.URLParam(r, "key"))
	respondList(w, r, rows, err)
}

func (h *Handler) containerProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ContainerProducts.ListByContainer(r.Context(), chi.URLParam(r, "key"))
	respondList(w, r, rows, err)
}

func (h *Handler) productsWithCategory(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Products.ListWithCategory(r.Context(), opts)
	respondList(w, r, rows, err)
}

func (h *Handler) driversWithEmployee(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Drivers.ListWithEmployee(r.Context(), opts)
	respondList(w, r, rows, err)
}

func (h *Handler) paymentsWithMethod(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Payments.ListWithMethod(r.Context(), opts)
	respondList(w, r, rows, err)
}

func (h *Handler) inventoryItems(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.Inventory.ListItems(r.Context(), opts)
	respondList(w, r, rows, err)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard.Stats(r.Context())
	respond(w, r, http.StatusOK, stats, err)
}

func (h *Handler) dashboardOccupancy(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Dashboard.WarehouseOccupancy(r.Context())
	respondList(w, r, rows, err)
}

func (h *Handler) dashboardInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Dashboard.InventoryOverview(r.Context())
	respondList(w, r, rows, err)
}

func (h *Handler) dashboardRecentShipments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Dashboard.RecentShipments(r.Context())
	respondList(w, r, rows, err)
}

func (h *Handler) dashboardPayments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Dashboard.PaymentSummary(r.Context())
	respondList(w, r, rows, err)
}
