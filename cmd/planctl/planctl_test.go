package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/service"
)

const lisbonCatalog = `
id: lisbon
name: Lisbon weekend
description: Trams and pastries
activities:
  - name: Tram 28
    category: sight
  - name: Pasteis de Belem
    category: food
  - name: Alfama walk
    category: sight
  - name: Time Out Market
    category: food
`

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lisbon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lisbonCatalog), 0o644))
	return path
}

func TestPlanCmdRendersSchedule(t *testing.T) {
	var out bytes.Buffer
	cmd := planCmd{Catalog: writeCatalog(t, t.TempDir()), Start: "2025-06-07", End: "2025-06-08", MaxPerDay: 2, FoodAfterSlot: 2}

	err := cmd.Run(&runContext{Out: &out, Logger: zap.NewNop()})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Lisbon weekend")
	assert.Contains(t, text, "Day1  Sat 07 Jun 2025")
	assert.Contains(t, text, "1. Tram 28 (sight)")
	assert.Contains(t, text, "2. Pasteis de Belem (food)")
	assert.Contains(t, text, "Day2  Sun 08 Jun 2025")
	assert.Contains(t, text, "1. Alfama walk (sight)")
	assert.Contains(t, text, "2. Time Out Market (food)")
}

func TestPlanCmdNoSchedule(t *testing.T) {
	var out bytes.Buffer
	cmd := planCmd{Catalog: writeCatalog(t, t.TempDir()), Start: "2025-06-07", End: "2025-06-09", MaxPerDay: 2, FoodAfterSlot: 1}

	err := cmd.Run(&runContext{Out: &out, Logger: zap.NewNop()})
	require.ErrorIs(t, err, errNoSchedule)
	assert.Contains(t, out.String(), noScheduleLine)
}

func TestPlanCmdJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := planCmd{Catalog: writeCatalog(t, t.TempDir()), Start: "2025-06-07", End: "2025-06-07", MaxPerDay: 3, FoodAfterSlot: 3, JSON: true}

	err := cmd.Run(&runContext{Out: &out, Logger: zap.NewNop()})
	require.NoError(t, err)

	var decoded struct {
		Status   string                      `json:"status"`
		Schedule map[string][]map[string]any `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "scheduled", decoded.Status)
	require.Len(t, decoded.Schedule["Day1"], 3)
	assert.Equal(t, "Pasteis de Belem", decoded.Schedule["Day1"][2]["name"])
}

func TestPlanCmdRejectsBadRange(t *testing.T) {
	cmd := planCmd{Catalog: writeCatalog(t, t.TempDir()), Start: "2025-06-09", End: "2025-06-07", MaxPerDay: 2, FoodAfterSlot: 1}
	err := cmd.Run(&runContext{Out: &bytes.Buffer{}, Logger: zap.NewNop()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errNoSchedule)
}

func TestCatalogsCmd(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir)
	var out bytes.Buffer

	require.NoError(t, (&catalogsCmd{Dir: dir}).Run(&runContext{Out: &out, Logger: zap.NewNop()}))
	assert.Contains(t, out.String(), "lisbon")
	assert.Contains(t, out.String(), "4 activities")
	assert.Contains(t, out.String(), "Trams and pastries")

	out.Reset()
	require.NoError(t, (&catalogsCmd{Dir: filepath.Join(dir, "missing")}).Run(&runContext{Out: &out, Logger: zap.NewNop()}))
	assert.Contains(t, out.String(), "no catalogs found")
}

func TestTokenCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := tokenCmd{Secret: "test-secret", UserID: "user-9", Role: "ADMIN", Expiry: 0}

	require.NoError(t, cmd.Run(&runContext{Out: &out, Logger: zap.NewNop()}))

	tokens := service.NewTokenService(service.TokenConfig{Secret: "test-secret"})
	claims, err := tokens.ValidateToken(string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, "ADMIN", string(claims.Role))
}
