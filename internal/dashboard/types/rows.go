package types

import "github.com/shopspring/decimal"

// ProductMetricsRow mirrors one row of product_performance_metrics as projected by the
// top-products query.
type ProductMetricsRow struct {
	Name               string          `warehouse:"MENU_ITEM_NAME" json:"name" validate:"required"`
	TotalRevenue       decimal.Decimal `warehouse:"TOTAL_REVENUE" json:"total_revenue" validate:"gte=0"`
	TotalProfit        decimal.Decimal `warehouse:"TOTAL_PROFIT" json:"total_profit"`
	AvgProfitMarginPct decimal.Decimal `warehouse:"AVG_PROFIT_MARGIN_PCT" json:"avg_profit_margin_pct"`
	TotalUnitsSold     int64           `warehouse:"TOTAL_UNITS_SOLD" json:"total_units_sold" validate:"gte=0"`
}

// DailyMetricsRow mirrors the latest row of daily_business_metrics. ORDER_DATE is only
// used for ordering and is not projected.
type DailyMetricsRow struct {
	TotalOrders        int64           `warehouse:"TOTAL_ORDERS" json:"total_orders" validate:"gte=0"`
	TotalRevenue       decimal.Decimal `warehouse:"TOTAL_REVENUE" json:"total_revenue"`
	TotalProfit        decimal.Decimal `warehouse:"TOTAL_PROFIT" json:"total_profit"`
	AvgProfitMarginPct decimal.Decimal `warehouse:"AVG_PROFIT_MARGIN_PCT" json:"avg_profit_margin_pct"`
	UniqueCustomers    int64           `warehouse:"UNIQUE_CUSTOMERS" json:"unique_customers" validate:"gte=0"`
	TotalItemsSold     int64           `warehouse:"TOTAL_ITEMS_SOLD" json:"total_items_sold" validate:"gte=0"`
}

// RevenueMillions is TotalRevenue / 1,000,000, unrounded.
func (r ProductMetricsRow) RevenueMillions() decimal.Decimal {
	return r.TotalRevenue.Div(oneMillion)
}

var oneMillion = decimal.NewFromInt(1_000_000)
