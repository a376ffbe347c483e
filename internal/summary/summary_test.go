package summary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoscan/internal/engine"
	"neoscan/internal/model"
)

func sampleResults(t *testing.T) *engine.ResultsMap {
	t.Helper()
	rm := engine.NewResultsMap()
	require.NoError(t, rm.Set(443, model.Open))
	require.NoError(t, rm.Set(22, model.Closed))
	require.NoError(t, rm.Set(53, model.Filtered))
	return rm
}

func TestColorizeCoversEveryStatus(t *testing.T) {
	for _, s := range []model.PortStatus{model.Open, model.Closed, model.Filtered, model.Unfiltered, model.OpenFiltered} {
		assert.Contains(t, colorize(s), s.String())
	}
}

func TestWriteJSONOrderedByPort(t *testing.T) {
	rm := sampleResults(t)
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, WriteJSON(path, rm))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []jsonResult
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, uint16(22), rows[0].Port)
	assert.Equal(t, uint16(53), rows[1].Port)
	assert.Equal(t, uint16(443), rows[2].Port)
	assert.Equal(t, "closed", rows[0].Status)
}

func TestWriteJSONIsIdempotent(t *testing.T) {
	rm := sampleResults(t)
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, WriteJSON(path, rm))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteJSON(path, rm))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "writing the same ResultsMap twice must yield identical output")
}
