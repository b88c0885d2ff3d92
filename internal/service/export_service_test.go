package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
)

func exportFixture() (*models.Itinerary, []models.ItinerarySlot) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	itinerary := &models.Itinerary{
		ID:            "it-1",
		Title:         "Bali / Long Weekend",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 1),
		MaxPerDay:     2,
		FoodAfterSlot: 2,
	}
	slots := []models.ItinerarySlot{
		{DayIndex: 2, SlotIndex: 1, Date: start.AddDate(0, 0, 1), ActivityName: "Beach", Category: "sight", Activity: types.JSONText(`{"name":"Beach","category":"sight"}`)},
		{DayIndex: 1, SlotIndex: 2, Date: start, ActivityName: "Warung", Category: "food", Activity: types.JSONText(`{"name":"Warung","category":"food","price":2,"area":"Ubud"}`)},
		{DayIndex: 1, SlotIndex: 1, Date: start, ActivityName: "Temple", Category: "sight"},
	}
	return itinerary, slots
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := NewExportService(zap.NewNop(), nil, nil)
	itinerary, slots := exportFixture()

	result, err := svc.Render(itinerary, slots, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "itinerary_bali_-_long_weekend.csv", result.Filename)
	assert.Contains(t, result.ContentType, "text/csv")

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Day,Date,Slot,Activity,Category,Details", lines[0])
	assert.Equal(t, "Day1,2025-06-01,1,Temple,sight,", lines[1])
	assert.Equal(t, "Day1,2025-06-01,2,Warung,food,area=Ubud; price=2", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Day2,2025-06-02,1,Beach"))
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := NewExportService(nil, nil, nil)
	itinerary, slots := exportFixture()

	result, err := svc.Render(itinerary, slots, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(nil, nil, nil)
	itinerary, slots := exportFixture()

	_, err := svc.Render(itinerary, slots, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
