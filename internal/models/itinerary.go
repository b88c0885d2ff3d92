package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Itinerary is a saved schedule owned by a user.
type Itinerary struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	Title         string         `db:"title" json:"title"`
	StartDate     time.Time      `db:"start_date" json:"start_date"`
	EndDate       time.Time      `db:"end_date" json:"end_date"`
	MaxPerDay     int            `db:"max_per_day" json:"max_per_day"`
	FoodAfterSlot int            `db:"food_after_slot" json:"food_after_slot"`
	CatalogID     *string        `db:"catalog_id" json:"catalog_id,omitempty"`
	Stats         types.JSONText `db:"stats" json:"stats"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// ItinerarySlot is one placed activity of a saved itinerary.
type ItinerarySlot struct {
	ID           string         `db:"id" json:"id"`
	ItineraryID  string         `db:"itinerary_id" json:"itinerary_id"`
	DayIndex     int            `db:"day_index" json:"day_index"`
	SlotIndex    int            `db:"slot_index" json:"slot_index"`
	Date         time.Time      `db:"date" json:"date"`
	ActivityName string         `db:"activity_name" json:"activity_name"`
	Category     string         `db:"category" json:"category"`
	Activity     types.JSONText `db:"activity" json:"activity"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// ItineraryFilter narrows itinerary listings. An empty UserID lists every owner.
type ItineraryFilter struct {
	UserID   string
	Page     int
	PageSize int
}
