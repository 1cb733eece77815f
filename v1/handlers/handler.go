package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
	"github.com/tradelink-ops/logistics-backend/v1/services"
)

// ChangerHeader carries the SSN of the employee making a shipment change
const ChangerHeader = "X-Changer-SSN"

// Handler serves the v1 API
type Handler struct {
	svc      *services.Services
	watchers map[string]func(repository.ListOptions) *cache.Subscription
}

// NewHandler creates a new V1 handler
func NewHandler(svc *services.Services) *Handler {
	h := &Handler{svc: svc}
	h.watchers = h.watchViews()
	return h
}

// Routes returns the v1 router, to be mounted under /api/v1
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	s := h.svc

	r.Route("/categories", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Category, int64, models.CategoryInsert, models.CategoryUpdate]{
			service: s.Categories, key: intKey("key"),
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/with-category", h.productsWithCategory)
		mount(r, "/{key}", resource[models.Product, int64, models.ProductInsert, models.ProductUpdate]{
			service: s.Products.EntityService, key: intKey("key"),
		})
	})

	r.Route("/warehouses", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Warehouse, string, models.WarehouseInsert, models.WarehouseUpdate]{
			service: s.Warehouses.EntityService, key: stringKey("key"),
		})
		r.Get("/{key}/detail", h.warehouseDetail)
	})

	r.Route("/employees", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Employee, int64, models.EmployeeInsert, models.EmployeeUpdate]{
			service: s.Employees.EntityService, key: intKey("key"),
		})
		r.Get("/{key}/detail", h.employeeDetail)
		r.Get("/{key}/dependents", h.employeeDependents)
	})

	r.Route("/dependents", func(r chi.Router) {
		mount(r, "/{ssn}/{name}", resource[models.Dependent, models.DependentKey, models.DependentInsert, models.DependentUpdate]{
			service: s.Dependents.EntityService, key: dependentKey,
		})
	})

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/with-employee", h.driversWithEmployee)
		mount(r, "/{key}", resource[models.Driver, string, models.DriverInsert, models.DriverUpdate]{
			service: s.Drivers.EntityService, key: stringKey("key"),
		})
	})

	r.Route("/importers", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Importer, string, models.ImporterInsert, models.ImporterUpdate]{
			service: s.Importers.EntityService, key: stringKey("key"),
		})
		r.Get("/{key}/detail", h.importerDetail)
		r.Get("/{key}/phones", h.importerPhones)
	})

	r.Route("/importer-phones", func(r chi.Router) {
		mount(r, "/{key}", resource[models.ImporterPhone, string, models.ImporterPhoneInsert, models.ImporterPhoneUpdate]{
			service: s.ImporterPhones.EntityService, key: stringKey("key"),
		})
	})

	r.Route("/shipments", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Shipment, int64, models.ShipmentInsert, models.ShipmentUpdate]{
			service: s.Shipments.EntityService, key: intKey("key"), update: h.updateShipment,
		})
		r.Get("/{key}/detail", h.shipmentDetail)
		r.Get("/{key}/containers", h.shipmentContainers)
		r.Get("/{key}/transportation", h.shipmentLegs)
		r.Get("/{key}/history", h.shipmentHistory)
	})

	r.Route("/containers", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Container, string, models.ContainerInsert, models.ContainerUpdate]{
			service: s.Containers.EntityService, key: stringKey("key"),
		})
		r.Get("/{key}/products", h.containerProducts)
	})

	r.Route("/container-products", func(r chi.Router) {
		mount(r, "/{container}/{product}", resource[models.ContainerProduct, models.ContainerProductKey, models.ContainerProductInsert, models.ContainerProductUpdate]{
			service: s.ContainerProducts.EntityService, key: containerProductKey,
		})
	})

	r.Route("/transportation", func(r chi.Router) {
		mount(r, "/{key}", resource[models.Transportation, string, models.TransportationInsert, models.TransportationUpdate]{
			service: s.Transportation, key: stringKey("key"),
		})
	})

	r.Route("/shipment-transportation", func(r chi.Router) {
		mount(r, "/{shipment}/{transportation}", resource[models.ShipmentTransportation, models.ShipmentTransportationKey, models.ShipmentTransportationInsert, models.ShipmentTransportationUpdate]{
			service: s.ShipmentTransportation.EntityService, key: shipmentLegKey,
		})
	})

	r.Route("/payment-methods", func(r chi.Router) {
		mount(r, "/{key}", resource[models.PaymentMethod, int64, models.PaymentMethodInsert, models.PaymentMethodUpdate]{
			service: s.PaymentMethods, key: intKey("key"),
		})
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/with-method", h.paymentsWithMethod)
		mount(r, "/{key}", resource[models.Payment, string, models.PaymentInsert, models.PaymentUpdate]{
			service: s.Payments.EntityService, key: stringKey("key"),
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/items", h.inventoryItems)
		mount(r, "/{product}/{warehouse}", resource[models.Inventory, models.InventoryKey, models.InventoryInsert, models.InventoryUpdate]{
			service: s.Inventory.EntityService, key: inventoryKey,
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.dashboardStats)
		r.Get("/occupancy", h.dashboardOccupancy)
		r.Get("/inventory", h.dashboardInventory)
		r.Get("/recent-shipments", h.dashboardRecentShipments)
		r.Get("/payments", h.dashboardPayments)
	})

	r.Get("/watch/{view}", h.watch)

	return r
}

// listOptions reads search, filter, sort and limit query parameters
func listOptions(r *http.Request) (repository.ListOptions, error) {
	q := r.URL.Query()
	opts := repository.ListOptions{
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    q.Get("status"),
		Warehouse: q.Get("warehouse"),
		SortField: q.Get("sort"),
		SortDir:   repository.SortDirection(strings.ToLower(q.Get("dir"))),
	}

	if raw := q.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid category %q", raw)
		}
		opts.Category = &id
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid limit %q", raw)
		}
		opts.Limit = n
	}
	return opts, nil
}

// changerSSN reads the optional changer header; absent means 0
func changerSSN(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(ChangerHeader))
	if raw == "" {
		return 0, nil
	}
	ssn, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ssn <= 0 {
		return 0, fmt.Errorf("invalid %s header %q", ChangerHeader, raw)
	}
	return ssn, nil
}

func respond[T any](w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, status, v)
}

func respondList[T any](w http.ResponseWriter, r *http.Request, rows []T, err error) {
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(rows, len(rows)))
}

// respondError maps a taxonomy error onto its HTTP status
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	var badRequest errBadRequest
	if errors.As(err, &badRequest) {
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	resp := utils.ErrorResponse{Error: err.Error(), Code: string(apperrors.TypeOf(err))}
	if agg, ok := apperrors.AsPartialAggregation(err); ok {
		resp.Details = strings.Join(agg.FailedQueries(), ",")
	}
	if we, ok := apperrors.AsWriteError(err); ok && we.Kind != "" {
		resp.Details = string(we.Kind)
	}
	utils.RespondWithJSON(w, status, resp)
}
