package dto

import (
	"time"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
)

// NoScheduleMessage is returned alongside a no_solution outcome.
const NoScheduleMessage = "No valid schedule found for given constraints"

// PlanItineraryRequest asks the planner for a schedule over an inclusive date range.
// Exactly one of Activities or CatalogID must be supplied.
type PlanItineraryRequest struct {
	StartDate   string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string           `json:"endDate" validate:"required,datetime=2006-01-02"`
	Activities  []map[string]any `json:"activities"`
	CatalogID   string           `json:"catalogId" validate:"omitempty,max=64"`
	Constraints map[string]any   `json:"constraints"`
}

// PlanConstraints echoes the effective constraint values used for a plan.
type PlanConstraints struct {
	MaxPerDay     int `json:"max_per_day"`
	FoodAfterSlot int `json:"food_after_slot"`
}

// PlanItineraryResponse carries either a schedule or the no-solution outcome.
type PlanItineraryResponse struct {
	Status      scheduler.Outcome   `json:"status"`
	Reason      scheduler.Reason    `json:"reason"`
	ProposalID  string              `json:"proposalId,omitempty"`
	Message     string              `json:"message,omitempty"`
	Schedule    *scheduler.Schedule `json:"schedule,omitempty"`
	Days        []scheduler.Day     `json:"days,omitempty"`
	Constraints PlanConstraints     `json:"constraints"`
	Stats       scheduler.Stats     `json:"stats"`
	Cached      bool                `json:"cached"`
}

// SaveItineraryRequest persists a previously planned proposal.
type SaveItineraryRequest struct {
	ProposalID string `json:"proposalId" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,min=1,max=200"`
}

// SaveItineraryResponse returns the stored itinerary id.
type SaveItineraryResponse struct {
	ID string `json:"id"`
}

// UpdateItineraryRequest is a partial update; absent fields are left untouched. Dates and
// constraints are fixed by the saved schedule, so only the title is editable.
type UpdateItineraryRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
}

// ListItinerariesQuery paginates itinerary listings.
type ListItinerariesQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// ItineraryDay groups stored slots of one calendar day.
type ItineraryDay struct {
	Index int                    `json:"index"`
	Label string                 `json:"label"`
	Date  time.Time              `json:"date"`
	Slots []models.ItinerarySlot `json:"slots"`
}

// ItineraryDetailResponse is a stored itinerary with its slots grouped by day.
type ItineraryDetailResponse struct {
	Itinerary models.Itinerary `json:"itinerary"`
	Days      []ItineraryDay   `json:"days"`
}

// ExportItineraryQuery selects the export format.
type ExportItineraryQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
