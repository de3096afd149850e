package query

import (
	"context"
	"fmt"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/warehouse"
)

const latestDailyMetricsSQL = `SELECT TOTAL_ORDERS, TOTAL_REVENUE, TOTAL_PROFIT, AVG_PROFIT_MARGIN_PCT, UNIQUE_CUSTOMERS, TOTAL_ITEMS_SOLD
FROM %s
ORDER BY ORDER_DATE DESC
LIMIT 1`

var dailyColumns = []string{
	"TOTAL_ORDERS",
	"TOTAL_REVENUE",
	"TOTAL_PROFIT",
	"AVG_PROFIT_MARGIN_PCT",
	"UNIQUE_CUSTOMERS",
	"TOTAL_ITEMS_SOLD",
}

// LatestDailyMetricsSQL renders the daily-metrics statement for exec's dialect.
func LatestDailyMetricsSQL(exec warehouse.Executor, table types.TableRef) string {
	return fmt.Sprintf(latestDailyMetricsSQL, exec.TableRef(table.String()))
}

// LatestDailyMetrics reads the row with the most recent ORDER_DATE. An empty table yields
// a nil row and no error.
func LatestDailyMetrics(ctx context.Context, exec warehouse.Executor, table types.TableRef) (*types.DailyMetricsRow, error) {
	if exec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "warehouse executor required")
	}
	if table.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily metrics table required")
	}

	records, err := exec.Select(ctx, LatestDailyMetricsSQL(exec, table))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "daily metrics query failed").
			WithDetails(map[string]any{"table": table.String()})
	}
	if len(records) == 0 {
		return nil, nil
	}

	row, err := decodeRecord[types.DailyMetricsRow](table, 0, records[0], dailyColumns)
	if err != nil {
		return nil, err
	}
	return &row, nil
}
