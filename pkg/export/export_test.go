package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(rows int) Dataset {
	data := Dataset{
		Headers: []string{"Day", "Slot", "Activity"},
		Notes:   []string{"2025-06-01 to 2025-06-02"},
		Widths:  []float64{1, 1, 4},
	}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, map[string]string{
			"Day":      fmt.Sprintf("Day%d", i/3+1),
			"Slot":     fmt.Sprintf("%d", i%3+1),
			"Activity": fmt.Sprintf("Stop, number %d", i),
		})
	}
	return data
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(2))
	require.NoError(t, err)
	assert.Equal(t, "Day,Slot,Activity\nDay1,1,\"Stop, number 0\"\nDay1,2,\"Stop, number 1\"\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(120), "Bali trip")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewPDFExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(sampleDataset(0))
	assert.InDelta(t, 190.0/6, widths[0], 0.001)
	assert.InDelta(t, 190.0*4/6, widths[2], 0.001)

	even := columnWidths(Dataset{Headers: []string{"a", "b"}})
	assert.Equal(t, []float64{95, 95}, even)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	long := "a very long activity name that does not fit"
	got := truncate(long, 20)
	assert.Len(t, []rune(got), 11)
	assert.Equal(t, "...", got[len(got)-3:])
}
