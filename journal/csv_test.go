package journal

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSale() Sale {
	return Sale{
		Ref:           "01HZX3Y8M7K5Q2W9E4R6T1Y0UI",
		DayID:         7,
		Asset:         "USDT",
		Quantity:      d("100"),
		UnitPrice:     d("1.05"),
		CostBasis:     d("1"),
		CostTotal:     d("100"),
		Revenue:       d("105"),
		CommissionPct: d("0.35"),
		Commission:    d("0.3675"),
		NetCash:       d("104.6325"),
		GrossProfit:   d("5"),
		NetProfit:     d("4.6325"),
		CreatedAt:     time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestExportSalesCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, ExportSalesCSV(&buf, []Sale{sampleSale()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, saleHeader, records[0])
	row := records[1]
	assert.Equal(t, "01HZX3Y8M7K5Q2W9E4R6T1Y0UI", row[0])
	assert.Equal(t, "7", row[1])
	assert.Equal(t, "USDT", row[2])
	assert.Equal(t, "0.3675", row[9])
	assert.Equal(t, "104.6325", row[10])
	assert.Equal(t, "4.6325", row[13])
	assert.Equal(t, "2025-03-01T10:30:00Z", row[14])
}

func TestExportSalesCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, ExportSalesCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportCycleCSV(t *testing.T) {
	t.Parallel()

	closed := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	days := []Day{
		{
			ID: 1, CycleID: 3, Number: 1, State: DayClosed,
			OpenedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), ClosedAt: &closed,
			Asset: "USDT", Price: decimal.NewNullDecimal(d("1.05")), SaleCount: 1,
			CapitalInitial: d("100"), CapitalFinal: d("104.6325"), NetProfit: d("4.6325"),
		},
		{
			ID: 2, CycleID: 3, Number: 2, State: DayOpen,
			OpenedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), CapitalInitial: d("104.6325"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCycleCSV(&buf, days))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"3", "1", "cerrado"}, records[1][:3])
	assert.Equal(t, "2025-03-01T18:00:00Z", records[1][4])
	assert.Equal(t, "1.05", records[1][6])
	assert.Equal(t, "4.6325", records[1][14])

	assert.Equal(t, "abierto", records[2][2])
	assert.Empty(t, records[2][4])
	assert.Empty(t, records[2][6])
}
