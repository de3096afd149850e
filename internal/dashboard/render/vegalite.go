package render

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Field names used in the inline data values.
const (
	fieldRevenueMillions = "revenue_millions"
	fieldMarginPct       = "margin_pct"
)

// VegaLite returns a Vega-Lite v5 spec for the chart. Tooltips read the preformatted
// strings so the browser shows exactly what the server rendered.
func (c *Chart) VegaLite() map[string]any {
	values := make([]map[string]any, 0, len(c.Bars))
	for _, bar := range c.Bars {
		millions, _ := bar.RevenueMillions.Float64()
		margin, _ := bar.MarginPct.Float64()
		value := map[string]any{
			fieldRevenueMillions: millions,
			fieldMarginPct:       margin,
		}
		for _, field := range bar.Tooltip {
			value[field.Title] = field.Value
		}
		values = append(values, value)
	}

	tooltip := make([]map[string]any, 0, 5)
	for _, title := range []string{TooltipProduct, TooltipRevenue, TooltipProfit, TooltipMargin, TooltipUnitsSold} {
		tooltip = append(tooltip, map[string]any{"field": title, "type": "nominal", "title": title})
	}

	return map[string]any{
		"$schema": vegaLiteSchema,
		"title":   c.Title,
		"height":  c.Height,
		"width":   c.Width,
		"data":    map[string]any{"values": values},
		"mark":    map[string]any{"type": "bar"},
		"params": []map[string]any{{
			"name":   "grid",
			"select": "interval",
			"bind":   "scales",
		}},
		"encoding": map[string]any{
			"x": map[string]any{
				"field": fieldRevenueMillions,
				"type":  "quantitative",
				"title": c.XTitle,
				"axis":  map[string]any{"format": ".0f"},
			},
			"y": map[string]any{
				"field": TooltipProduct,
				"type":  "nominal",
				"title": c.YTitle,
				"sort":  "-x",
			},
			"color": map[string]any{
				"field": fieldMarginPct,
				"type":  "quantitative",
				"title": c.ColorTitle,
				"scale": map[string]any{"scheme": "viridis", "domain": c.ColorDomain},
			},
			"tooltip": tooltip,
		},
	}
}
