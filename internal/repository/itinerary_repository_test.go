package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
)

func newItineraryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var itineraryRowColumns = []string{"id", "user_id", "title", "start_date", "end_date", "max_per_day", "food_after_slot", "catalog_id", "stats", "created_at", "updated_at"}

func TestItineraryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO itineraries")).
		WithArgs(sqlmock.AnyArg(), "user-1", "Bali", start, start, 3, 2, nil, types.JSONText(`{}`), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload := &models.Itinerary{
		UserID:        "user-1",
		Title:         "Bali",
		StartDate:     start,
		EndDate:       start,
		MaxPerDay:     3,
		FoodAfterSlot: 2,
	}
	require.NoError(t, repo.Create(context.Background(), nil, payload))
	assert.NotEmpty(t, payload.ID)
	assert.False(t, payload.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryCreateRequiresOwner(t *testing.T) {
	db, _, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	err := repo.Create(context.Background(), nil, &models.Itinerary{Title: "x"})
	assert.Error(t, err)
}

func TestItineraryRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(itineraryRowColumns).
		AddRow("it-1", "user-1", "Bali", now, now, 3, 1, nil, types.JSONText(`{"nodes":4}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + itineraryColumns + " FROM itineraries WHERE id = $1")).
		WithArgs("it-1").
		WillReturnRows(rows)

	itinerary, err := repo.FindByID(context.Background(), "it-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", itinerary.UserID)
	assert.Nil(t, itinerary.CatalogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM itineraries WHERE id = $1")).
		WithArgs("it-404").
		WillReturnRows(sqlmock.NewRows(itineraryRowColumns))

	_, err := repo.FindByID(context.Background(), "it-404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestItineraryRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(itineraryRowColumns).
		AddRow("it-1", "user-1", "Bali", now, now, 3, 1, "bali", types.JSONText(`{}`), now, now).
		AddRow("it-2", "user-1", "Kyoto", now.AddDate(0, 1, 0), now.AddDate(0, 1, 2), 2, 2, nil, types.JSONText(`{}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + itineraryColumns + " FROM itineraries WHERE user_id = $1 ORDER BY start_date ASC, created_at ASC LIMIT 20 OFFSET 0")).
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM itineraries WHERE user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	list, total, err := repo.List(context.Background(), models.ItineraryFilter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].CatalogID)
	assert.Equal(t, "bali", *list[0].CatalogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryListAllPaged(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM itineraries ORDER BY start_date ASC, created_at ASC LIMIT 5 OFFSET 10")).
		WillReturnRows(sqlmock.NewRows(itineraryRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM itineraries")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	list, total, err := repo.List(context.Background(), models.ItineraryFilter{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 10, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM itineraries WHERE id = $1")).
		WithArgs("it-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "it-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM itineraries WHERE id = $1")).
		WithArgs("it-1").
		WillReturnResult(sqlmock.NewResult(1, 0))

	err := repo.Delete(context.Background(), "it-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE itineraries SET title = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("Kyoto in autumn", sqlmock.AnyArg(), "it-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	itinerary := &models.Itinerary{ID: "it-1", Title: "Kyoto in autumn"}
	require.NoError(t, repo.Update(context.Background(), itinerary))
	assert.False(t, itinerary.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newItineraryRepoMock(t)
	defer cleanup()
	repo := NewItineraryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE itineraries SET title = $1")).
		WithArgs("x", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Itinerary{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, repo.Update(context.Background(), &models.Itinerary{Title: "no id"}))
}
