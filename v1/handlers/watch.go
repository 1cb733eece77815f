package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// watchEvent is the data of one server-sent snapshot
type watchEvent struct {
	Key       string      `json:"key"`
	Status    string      `json:"status"`
	Loading   bool        `json:"loading"`
	Value     interface{} `json:"value,omitempty"`
	Error     string      `json:"error,omitempty"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

func newWatchEvent(snap cache.Snapshot) watchEvent {
	ev := watchEvent{
		Key:     snap.Key,
		Status:  snap.Status.String(),
		Loading: snap.Loading(),
	}
	if snap.HasValue {
		ev.Value = snap.Value
	}
	if snap.Err != nil {
		ev.Error = snap.Err.Error()
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		ev.UpdatedAt = &t
	}
	return ev
}

// watchViews maps watchable view names to their subscriptions
func (h *Handler) watchViews() map[string]func(repository.ListOptions) *cache.Subscription {
	s := h.svc
	return map[string]func(repository.ListOptions) *cache.Subscription{
		models.EntityCategory.String():               s.Categories.WatchList,
		models.EntityProduct.String():                s.Products.WatchList,
		models.EntityWarehouse.String():              s.Warehouses.WatchList,
		models.EntityEmployee.String():               s.Employees.WatchList,
		models.EntityDependent.String():              s.Dependents.WatchList,
		models.EntityDriver.String():                 s.Drivers.WatchList,
		models.EntityImporter.String():               s.Importers.WatchList,
		models.EntityImporterPhone.String():          s.ImporterPhones.WatchList,
		models.EntityShipment.String():               s.Shipments.WatchList,
		models.EntityContainer.String():              s.Containers.WatchList,
		models.EntityContainerProduct.String():       s.ContainerProducts.WatchList,
		models.EntityTransportation.String():         s.Transportation.WatchList,
		models.EntityShipmentTransportation.String(): s.ShipmentTransportation.WatchList,
		models.EntityShipmentStatusHistory.String():  s.StatusHistory.WatchList,
		models.EntityPaymentMethod.String():          s.PaymentMethods.WatchList,
		models.EntityPayment.String():                s.Payments.WatchList,
		models.EntityInventory.String():              s.Inventory.WatchList,
		"inventory-items":                            s.Inventory.WatchItems,
		"dashboard-stats": func(repository.ListOptions) *cache.Subscription {
			return s.Dashboard.WatchStats()
		},
	}
}

// watch streams the snapshots of one cached view as server-sent events until
// the client disconnects
func (h *Handler) watch(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	open, ok := h.watchers[view]
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("unknown view %q", view))
		return
	}
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub := open(opts)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSnapshot(w, sub.Current()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-sub.Updates():
			if !ok {
				return
			}
			if err := writeSnapshot(w, snap); err != nil {
				slog.Debug("Watch stream closed", "view", view, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap cache.Snapshot) error {
	data, err := json.Marshal(newWatchEvent(snap))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
	return err
}
