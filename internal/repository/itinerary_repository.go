package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
)

const itineraryColumns = `id, user_id, title, start_date, end_date, max_per_day, food_after_slot, catalog_id, stats, created_at, updated_at`

// ItineraryRepository persists saved itineraries.
type ItineraryRepository struct {
	db *sqlx.DB
}

// NewItineraryRepository constructs repository.
func NewItineraryRepository(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

func (r *ItineraryRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts an itinerary row, filling id and timestamps when empty.
func (r *ItineraryRepository) Create(ctx context.Context, exec sqlx.ExtContext, itinerary *models.Itinerary) error {
	if itinerary == nil {
		return fmt.Errorf("itinerary payload is nil")
	}
	if itinerary.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if itinerary.ID == "" {
		itinerary.ID = uuid.NewString()
	}
	if len(itinerary.Stats) == 0 {
		itinerary.Stats = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if itinerary.CreatedAt.IsZero() {
		itinerary.CreatedAt = now
	}
	itinerary.UpdatedAt = now

	const query = `
INSERT INTO itineraries (id, user_id, title, start_date, end_date, max_per_day, food_after_slot, catalog_id, stats, created_at, updated_at)
VALUES (:id, :user_id, :title, :start_date, :end_date, :max_per_day, :food_after_slot, :catalog_id, :stats, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, itinerary); err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}
	return nil
}

// FindByID loads an itinerary by its identifier.
func (r *ItineraryRepository) FindByID(ctx context.Context, id string) (*models.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`
	var itinerary models.Itinerary
	if err := r.db.GetContext(ctx, &itinerary, query, id); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// List returns itineraries ordered by start date, optionally restricted to one owner.
func (r *ItineraryRepository) List(ctx context.Context, filter models.ItineraryFilter) ([]models.Itinerary, int, error) {
	baseQuery := "FROM itineraries"
	var args []interface{}
	if filter.UserID != "" {
		baseQuery += " WHERE user_id = $1"
		args = append(args, filter.UserID)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY start_date ASC, created_at ASC LIMIT %d OFFSET %d", itineraryColumns, baseQuery, pageSize, offset)
	var itineraries []models.Itinerary
	if err := r.db.SelectContext(ctx, &itineraries, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list itineraries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count itineraries: %w", err)
	}
	return itineraries, total, nil
}

// Update writes the editable columns of an itinerary and bumps updated_at.
func (r *ItineraryRepository) Update(ctx context.Context, itinerary *models.Itinerary) error {
	if itinerary == nil || itinerary.ID == "" {
		return fmt.Errorf("itinerary id is required")
	}
	itinerary.UpdatedAt = time.Now().UTC()

	const query = `UPDATE itineraries SET title = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, itinerary.Title, itinerary.UpdatedAt, itinerary.ID)
	if err != nil {
		return fmt.Errorf("update itinerary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("itinerary rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an itinerary. Slots go with it through the foreign key cascade.
func (r *ItineraryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM itineraries WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete itinerary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("itinerary rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
