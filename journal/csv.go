// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var saleHeader = []string{
	"ref", "day_id", "asset", "quantity", "unit_price", "cost_basis", "cost_total",
	"revenue", "commission_pct", "commission", "net_cash", "gross_profit", "net_profit",
	"roi_pct", "time",
}

// ExportSalesCSV writes sales, one row each, after a header.
func ExportSalesCSV(w io.Writer, sales []Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(saleHeader); err != nil {
		return err
	}
	for _, s := range sales {
		err := cw.Write([]string{
			s.Ref,
			strconv.FormatInt(s.DayID, 10),
			s.Asset,
			dec(s.Quantity),
			dec(s.UnitPrice),
			dec(s.CostBasis),
			dec(s.CostTotal),
			dec(s.Revenue),
			dec(s.CommissionPct),
			dec(s.Commission),
			dec(s.NetCash),
			dec(s.GrossProfit),
			dec(s.NetProfit),
			s.ROIPct().StringFixedBank(4),
			s.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var dayHeader = []string{
	"cycle_id", "day", "state", "opened", "closed", "asset", "price", "sales",
	"capital_initial", "capital_final", "cash_received", "commissions",
	"gross_profit", "net_profit", "roi_pct",
}

// ExportCycleCSV writes the day by day figures of a cycle.
func ExportCycleCSV(w io.Writer, days []Day) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dayHeader); err != nil {
		return err
	}
	for _, d := range days {
		closed, price := "", ""
		if d.ClosedAt != nil {
			closed = d.ClosedAt.UTC().Format(time.RFC3339)
		}
		if d.HasPrice() {
			price = dec(d.Price.Decimal)
		}
		err := cw.Write([]string{
			strconv.FormatInt(d.CycleID, 10),
			strconv.Itoa(d.Number),
			string(d.State),
			d.OpenedAt.UTC().Format(time.RFC3339),
			closed,
			d.Asset,
			price,
			strconv.Itoa(d.SaleCount),
			dec(d.CapitalInitial),
			dec(d.CapitalFinal),
			dec(d.CashReceived),
			dec(d.Commissions),
			dec(d.GrossProfit),
			dec(d.NetProfit),
			d.ROIPct().StringFixedBank(4),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
