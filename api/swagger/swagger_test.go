package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsRegisteredAndValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Contains(t, parsed.Paths, "/api/v1/itineraries/plan")
	assert.Contains(t, parsed.Paths["/api/v1/itineraries/{id}"], "delete")
	assert.Contains(t, parsed.Paths["/api/v1/itineraries/{id}"], "put")
	assert.Contains(t, parsed.Paths["/api/v1/itineraries/{id}/export"], "get")
}
