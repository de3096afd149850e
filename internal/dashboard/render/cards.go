package render

import "github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"

// Card labels, in display order.
const (
	CardTotalOrders  = "Total Orders"
	CardRevenue      = "Revenue"
	CardProfit       = "Profit"
	CardProfitMargin = "Profit Margin"
	CardCustomers    = "Customers"
	CardItemsSold    = "Items Sold"
)

// Card is a single labelled KPI.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BuildCards renders the six daily KPI cards. A nil row (no data yet) yields no cards.
func BuildCards(row *types.DailyMetricsRow) []Card {
	if row == nil {
		return []Card{}
	}
	return []Card{
		{Label: CardTotalOrders, Value: Integer(row.TotalOrders)},
		{Label: CardRevenue, Value: Currency(row.TotalRevenue)},
		{Label: CardProfit, Value: Currency(row.TotalProfit)},
		{Label: CardProfitMargin, Value: Percent(row.AvgProfitMarginPct)},
		{Label: CardCustomers, Value: Integer(row.UniqueCustomers)},
		{Label: CardItemsSold, Value: Integer(row.TotalItemsSold)},
	}
}
