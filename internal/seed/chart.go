// Package seed loads chart-of-accounts datasets used to onboard a legal entity.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

//go:embed default_chart.yaml
var defaultChart []byte

type chartFile struct {
	Accounts []domain.ChartRow `yaml:"accounts"`
}

// DefaultChart returns the bundled chart of accounts.
func DefaultChart() ([]domain.ChartRow, error) {
	return ParseChart(defaultChart)
}

// LoadChart reads a chart dataset from path, or the bundled one when path is empty.
func LoadChart(path string) ([]domain.ChartRow, error) {
	if path == "" {
		return DefaultChart()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	return ParseChart(data)
}

// ParseChart decodes a YAML chart dataset.
func ParseChart(data []byte) ([]domain.ChartRow, error) {
	var file chartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse chart: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("parse chart: no accounts")
	}
	for i, row := range file.Accounts {
		if row.Code == "" || row.Name == "" {
			return nil, fmt.Errorf("parse chart: row %d needs code and name", i+1)
		}
		if !row.AccountType.IsValid() {
			return nil, fmt.Errorf("parse chart: account %s has unknown type %q", row.Code, row.AccountType)
		}
	}
	return file.Accounts, nil
}
