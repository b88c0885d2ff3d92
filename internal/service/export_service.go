package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
	"github.com/noah-isme/itinerary-planner-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Day", "Date", "Slot", "Activity", "Category", "Details"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	ContentType() string
}

// ExportResult is a rendered document ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders saved itineraries as CSV or PDF documents.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// Render builds the dataset for an itinerary and encodes it in the requested format.
func (s *ExportService) Render(itinerary *models.Itinerary, slots []models.ItinerarySlot, format string) (*ExportResult, error) {
	if itinerary == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "itinerary missing for export")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}

	dataset := buildItineraryDataset(itinerary, slots)
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = s.csv.ContentType()
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, itinerary.Title)
		contentType = s.pdf.ContentType()
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("itinerary export failed", zap.String("itinerary_id", itinerary.ID), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render itinerary export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("itinerary_%s.%s", sanitizeFilename(itinerary.Title, itinerary.ID), format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildItineraryDataset(itinerary *models.Itinerary, slots []models.ItinerarySlot) export.Dataset {
	ordered := make([]models.ItinerarySlot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DayIndex == ordered[j].DayIndex {
			return ordered[i].SlotIndex < ordered[j].SlotIndex
		}
		return ordered[i].DayIndex < ordered[j].DayIndex
	})

	rows := make([]map[string]string, 0, len(ordered))
	for _, slot := range ordered {
		rows = append(rows, map[string]string{
			"Day":      fmt.Sprintf("Day%d", slot.DayIndex),
			"Date":     slot.Date.Format("2006-01-02"),
			"Slot":     fmt.Sprintf("%d", slot.SlotIndex),
			"Activity": slot.ActivityName,
			"Category": slot.Category,
			"Details":  activityDetails(slot.Activity),
		})
	}
	return export.Dataset{
		Headers: exportHeaders,
		Rows:    rows,
		Widths:  []float64{1, 1.6, 0.8, 3, 1.4, 3},
		Notes: []string{
			fmt.Sprintf("%s to %s", itinerary.StartDate.Format("2006-01-02"), itinerary.EndDate.Format("2006-01-02")),
			fmt.Sprintf("max %d per day, food from slot %d", itinerary.MaxPerDay, itinerary.FoodAfterSlot),
		},
	}
}

// activityDetails flattens the non-name, non-category fields as key=value pairs in key order.
func activityDetails(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key == "name" || key == "category" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return strings.Join(parts, "; ")
}

func sanitizeFilename(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "", "__", "_")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
