package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/arbitrage/market"
)

// FormatDayOrg renders a day and its sales as an Org-mode block. Figures
// go into a PROPERTIES drawer for search; the Notes heading is left for
// the operator.
func FormatDayOrg(d Day, sales []Sale, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Day %d (cycle %d) [%s]\n", d.Number, d.CycleID, d.State)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":DAY_ID: %d\n", d.ID)
	fmt.Fprintf(&b, ":OPENED: %s\n", d.OpenedAt.UTC().Format(time.RFC3339))
	if d.ClosedAt != nil {
		fmt.Fprintf(&b, ":CLOSED: %s\n", d.ClosedAt.UTC().Format(time.RFC3339))
	}
	if d.HasPrice() {
		fmt.Fprintf(&b, ":ASSET: %s\n", d.Asset)
		fmt.Fprintf(&b, ":PRICE: %s\n", market.FormatPrice(d.Price.Decimal))
	}
	fmt.Fprintf(&b, ":SALES: %d\n", d.SaleCount)
	fmt.Fprintf(&b, ":CAPITAL_INITIAL: %s\n", market.FormatCash(d.CapitalInitial, currency))
	if !d.Open() {
		fmt.Fprintf(&b, ":CAPITAL_FINAL: %s\n", market.FormatCash(d.CapitalFinal, currency))
		fmt.Fprintf(&b, ":CASH_RECEIVED: %s\n", market.FormatCash(d.CashReceived, currency))
		fmt.Fprintf(&b, ":COMMISSIONS: %s\n", market.FormatCash(d.Commissions, currency))
		fmt.Fprintf(&b, ":GROSS_PROFIT: %s\n", market.FormatCash(d.GrossProfit, currency))
		fmt.Fprintf(&b, ":NET_PROFIT: %s\n", market.FormatCash(d.NetProfit, currency))
		fmt.Fprintf(&b, ":ROI: %s\n", market.FormatPct(d.ROIPct()))
	}
	b.WriteString(":END:\n")

	if len(sales) > 0 {
		b.WriteString("\n*** Sales\n")
		b.WriteString("| # | Asset | Quantity | Price | Commission | Net profit | ROI |\n")
		b.WriteString("|---+-------+----------+-------+------------+------------+-----|\n")
		for i, s := range sales {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
				i+1, s.Asset,
				market.FormatUnits(s.Quantity, s.Asset),
				market.FormatPrice(s.UnitPrice),
				market.FormatCash(s.Commission, currency),
				market.FormatCash(s.NetProfit, currency),
				market.FormatPct(s.ROIPct()),
			)
		}
	}
	b.WriteString("\n*** Notes\n- \n")
	return b.String()
}

// FormatCycleOrg renders a cycle summary followed by one line per day.
func FormatCycleOrg(c Cycle, days []Day, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "* Cycle %d [%s]\n", c.ID, c.State)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":CYCLE_ID: %d\n", c.ID)
	fmt.Fprintf(&b, ":START: %s\n", c.StartDate.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":PLANNED_DAYS: %d\n", c.PlannedDays)
	fmt.Fprintf(&b, ":PLANNED_END: %s\n", c.PlannedEnd().UTC().Format(time.DateOnly))
	fmt.Fprintf(&b, ":INITIAL_INVESTMENT: %s\n", market.FormatCash(c.InitialInvestment, currency))
	if c.ClosedAt != nil {
		fmt.Fprintf(&b, ":CLOSED: %s\n", c.ClosedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, ":DAYS_OPERATED: %d\n", c.DaysOperated)
		fmt.Fprintf(&b, ":NET_PROFIT: %s\n", market.FormatCash(c.TotalNetProfit, currency))
		fmt.Fprintf(&b, ":FINAL_CAPITAL: %s\n", market.FormatCash(c.FinalCapital, currency))
		fmt.Fprintf(&b, ":ROI: %s\n", market.FormatPct(c.ROIPct))
	}
	b.WriteString(":END:\n")

	if len(days) > 0 {
		b.WriteString("\n| Day | State | Sales | Capital | Net profit | ROI |\n")
		b.WriteString("|-----+-------+-------+---------+------------+-----|\n")
		for _, d := range days {
			fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s |\n",
				d.Number, d.State, d.SaleCount,
				market.FormatCash(d.CapitalInitial, currency),
				market.FormatCash(d.NetProfit, currency),
				market.FormatPct(d.ROIPct()),
			)
		}
	}
	return b.String()
}
