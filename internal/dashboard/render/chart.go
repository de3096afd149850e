// Package render turns warehouse rows into the chart and metric cards the dashboard shows.
package render

import (
	"slices"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	ChartTitle      = "Top 10 Products by Revenue"
	ChartXTitle     = "Total Revenue (Millions $)"
	ChartYTitle     = "Product"
	ChartColorTitle = "Profit Margin %"
	ChartHeight     = 400
	ChartWidth      = "container"
)

// Tooltip titles, in display order.
const (
	TooltipProduct   = "Product"
	TooltipRevenue   = "Revenue"
	TooltipProfit    = "Profit"
	TooltipMargin    = "Margin"
	TooltipUnitsSold = "Units Sold"
)

type TooltipField struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Bar is one horizontal bar of the top-products chart.
type Bar struct {
	Name            string          `json:"name"`
	Revenue         decimal.Decimal `json:"revenue"`
	RevenueMillions decimal.Decimal `json:"revenue_millions"`
	AxisLabel       string          `json:"axis_label"`
	Profit          decimal.Decimal `json:"profit"`
	MarginPct       decimal.Decimal `json:"margin_pct"`
	UnitsSold       int64           `json:"units_sold"`
	Color           string          `json:"color"`
	Tooltip         []TooltipField  `json:"tooltip"`
}

// Chart is the render-ready top-products bar chart. Bars are ordered by revenue, highest first.
type Chart struct {
	Title       string     `json:"title"`
	XTitle      string     `json:"x_title"`
	YTitle      string     `json:"y_title"`
	ColorTitle  string     `json:"color_title"`
	Height      int        `json:"height"`
	Width       string     `json:"width"`
	ColorDomain [2]float64 `json:"color_domain"`
	Bars        []Bar      `json:"bars"`
}

// BuildChart renders one bar per row. Rows are re-sorted by revenue descending with a
// stable sort, so equal revenues keep the order the warehouse returned.
func BuildChart(rows []types.ProductMetricsRow) (*Chart, error) {
	margins := make([]decimal.Decimal, 0, len(rows))
	for i, row := range rows {
		if err := types.Validate(row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product row").
				WithDetails(map[string]any{"row": i, "fields": types.FieldErrors(err)})
		}
		margins = append(margins, row.AvgProfitMarginPct)
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b types.ProductMetricsRow) int {
		return b.TotalRevenue.Cmp(a.TotalRevenue)
	})

	scale := newColorScale(margins)
	bars := make([]Bar, 0, len(sorted))
	for _, row := range sorted {
		millions := row.RevenueMillions()
		bars = append(bars, Bar{
			Name:            row.Name,
			Revenue:         row.TotalRevenue,
			RevenueMillions: millions,
			AxisLabel:       Fixed(millions, 0),
			Profit:          row.TotalProfit,
			MarginPct:       row.AvgProfitMarginPct,
			UnitsSold:       row.TotalUnitsSold,
			Color:           scale.Color(row.AvgProfitMarginPct),
			Tooltip: []TooltipField{
				{Title: TooltipProduct, Value: row.Name},
				{Title: TooltipRevenue, Value: Currency(row.TotalRevenue)},
				{Title: TooltipProfit, Value: Currency(row.TotalProfit)},
				{Title: TooltipMargin, Value: Percent(row.AvgProfitMarginPct)},
				{Title: TooltipUnitsSold, Value: Integer(row.TotalUnitsSold)},
			},
		})
	}

	return &Chart{
		Title:       ChartTitle,
		XTitle:      ChartXTitle,
		YTitle:      ChartYTitle,
		ColorTitle:  ChartColorTitle,
		Height:      ChartHeight,
		Width:       ChartWidth,
		ColorDomain: scale.Domain(),
		Bars:        bars,
	}, nil
}

// TooltipValue returns the formatted tooltip entry with the given title, or "".
func (b Bar) TooltipValue(title string) string {
	for _, field := range b.Tooltip {
		if field.Title == title {
			return field.Value
		}
	}
	return ""
}
