package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func TestDefaultChart(t *testing.T) {
	rows, err := DefaultChart()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	codes := make(map[string]domain.ChartRow, len(rows))
	for _, row := range rows {
		_, dup := codes[row.Code]
		assert.False(t, dup, "duplicate code %s", row.Code)
		codes[row.Code] = row
	}
	for _, row := range rows {
		if row.ParentCode != "" {
			parent, ok := codes[row.ParentCode]
			require.True(t, ok, "parent %s of %s missing", row.ParentCode, row.Code)
			assert.Equal(t, parent.AccountType, row.AccountType)
		}
	}

	// Accounts the deal bridge books against by default.
	for _, code := range []string{"1030", "1210", "3310", "6010", "7210"} {
		assert.Contains(t, codes, code)
	}
}

func TestParseChartRejectsUnknownType(t *testing.T) {
	_, err := ParseChart([]byte("accounts:\n  - {code: \"1\", name: \"X\", type: cash}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestParseChartRejectsEmpty(t *testing.T) {
	_, err := ParseChart([]byte("accounts: []\n"))
	assert.Error(t, err)
}

func TestLoadChartFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	data := "accounts:\n  - {code: \"10\", name: \"Child\", type: asset, parent: \"1\"}\n  - {code: \"1\", name: \"Root\", type: asset}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	rows, err := LoadChart(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ParentCode)
	assert.Equal(t, domain.Asset, rows[1].AccountType)
}

func TestLoadChartMissingFile(t *testing.T) {
	_, err := LoadChart(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
