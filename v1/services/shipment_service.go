package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// ShipmentService serves shipments, their detail view and status history
type ShipmentService struct {
	*EntityService[models.Shipment, int64]
	repo    *repository.ShipmentRepository
	history *StatusHistoryService
	now     func() time.Time
}

// GetDetail returns a shipment with its importer, warehouse and containers
func (s *ShipmentService) GetDetail(ctx context.Context, number int64) (models.ShipmentDetail, error) {
	return cachedDetail(ctx, s.EntityService, number, s.repo.GetDetail)
}

// UpdateByEmployee applies an update on behalf of changerSSN. When the update
// moves the shipment to a different status, the change is appended to the
// status history. Recording history is best effort: a failure is logged and
// never fails the update.
func (s *ShipmentService) UpdateByEmployee(ctx context.Context, number int64, in models.ShipmentUpdate, changerSSN int64) (models.Shipment, error) {
	if in.Status == nil || changerSSN <= 0 {
		return s.Update(ctx, number, in)
	}

	previous, err := s.repo.Get(ctx, number)
	if err != nil {
		return previous, err
	}

	updated, err := s.Update(ctx, number, in)
	if err != nil {
		return updated, err
	}

	if previous.Status != updated.Status {
		s.recordStatusChange(ctx, number, changerSSN, previous.Status, updated.Status)
	}
	return updated, nil
}

func (s *ShipmentService) recordStatusChange(ctx context.Context, number, changerSSN int64, from, to models.ShipmentStatus) {
	_, err := s.history.Create(ctx, models.ShipmentStatusHistoryInsert{
		ShipmentNo: number,
		ChangedAt:  s.now().UTC(),
		ChangerSSN: changerSSN,
	})
	if err != nil {
		slog.Warn("Failed to record shipment status change",
			"shipment", number, "from", from, "to", to, "changer", changerSSN, "error", err)
		return
	}
	slog.Info("Shipment status changed", "shipment", number, "from", from, "to", to, "changer", changerSSN)
}
