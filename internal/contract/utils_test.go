package contract

import (
	"testing"

	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
)

// TestStatusLabel verifies plain labels are used when colors are off.
func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "overdue", StatusLabel(schema.OverdueStatus, false))
	assert.Equal(t, "due_soon", StatusLabel(schema.DueSoonStatus, false))
	assert.Equal(t, "ok", StatusLabel(schema.OKStatus, false))
}

// TestBenchmarkHeaderLabel tests the header description per mode.
func TestBenchmarkHeaderLabel(t *testing.T) {
	quantileCfg := &Config{BenchmarkMode: schema.QuantileMode, Quantile: 0.5}
	assert.Equal(t, "benchmark = p50 (per product)", BenchmarkHeaderLabel(quantileCfg))

	manualCfg := &Config{BenchmarkMode: schema.ManualMode, ManualDays: 90}
	assert.Equal(t, "manual = 90 days", BenchmarkHeaderLabel(manualCfg))
}

// TestFormatRatePct tests the percentage formatting of optional rates.
func TestFormatRatePct(t *testing.T) {
	half := 0.5
	assert.Equal(t, "50.0%", FormatRatePct(&half, 1))
	assert.Equal(t, "50.00%", FormatRatePct(&half, 2))
	assert.Equal(t, "-", FormatRatePct(nil, 1))
}

// TestFormatOptDays tests optional day formatting.
func TestFormatOptDays(t *testing.T) {
	days := 12.5
	assert.Equal(t, "12.5", FormatOptDays(&days, 1))
	assert.Equal(t, "-", FormatOptDays(nil, 1))
}

// TestTruncateID tests identifier shortening for table cells.
func TestTruncateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		maxWidth int
		expected string
	}{
		{"short id untouched", "SKU-1", 12, "SKU-1"},
		{"exact width untouched", "abcdef", 6, "abcdef"},
		{"long id truncated", "customer-0001234567", 12, "customer-..."},
		{"tiny width untouched", "abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateID(tt.id, tt.maxWidth))
		})
	}
}

// TestRedactDSN verifies credentials never reach display output.
func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "***@tcp(localhost:3306)/rebuy", RedactDSN("user:pass@tcp(localhost:3306)/rebuy"))
	assert.Equal(t, "host=localhost", RedactDSN("host=localhost"))
}
