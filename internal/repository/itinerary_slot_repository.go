package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
)

// ItinerarySlotRepository manages the placed activities of saved itineraries.
type ItinerarySlotRepository struct {
	db *sqlx.DB
}

// NewItinerarySlotRepository builds repository.
func NewItinerarySlotRepository(db *sqlx.DB) *ItinerarySlotRepository {
	return &ItinerarySlotRepository{db: db}
}

func (r *ItinerarySlotRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// InsertBatch stores slots for an itinerary.
func (r *ItinerarySlotRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, slots []models.ItinerarySlot) error {
	if len(slots) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO itinerary_slots (id, itinerary_id, day_index, slot_index, date, activity_name, category, activity, created_at)
VALUES (:id, :itinerary_id, :day_index, :slot_index, :date, :activity_name, :category, :activity, :created_at)`

	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if len(slot.Activity) == 0 {
			slot.Activity = types.JSONText(`{}`)
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, slot); err != nil {
			return fmt.Errorf("insert itinerary slot: %w", err)
		}
	}
	return nil
}

// ListByItinerary returns slots ordered by day and slot.
func (r *ItinerarySlotRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]models.ItinerarySlot, error) {
	const query = `SELECT id, itinerary_id, day_index, slot_index, date, activity_name, category, activity, created_at
FROM itinerary_slots WHERE itinerary_id = $1 ORDER BY day_index ASC, slot_index ASC`
	var slots []models.ItinerarySlot
	if err := r.db.SelectContext(ctx, &slots, query, itineraryID); err != nil {
		return nil, fmt.Errorf("list itinerary slots: %w", err)
	}
	return slots, nil
}
