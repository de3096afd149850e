package query

import (
	"context"
	"fmt"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/warehouse"
)

// TopProductsLimit is the number of products the ranking shows.
const TopProductsLimit = 10

const topProductsSQL = `SELECT MENU_ITEM_NAME, TOTAL_REVENUE, TOTAL_PROFIT, AVG_PROFIT_MARGIN_PCT, TOTAL_UNITS_SOLD
FROM %s
ORDER BY TOTAL_REVENUE DESC
LIMIT %d`

var productColumns = []string{
	"MENU_ITEM_NAME",
	"TOTAL_REVENUE",
	"TOTAL_PROFIT",
	"AVG_PROFIT_MARGIN_PCT",
	"TOTAL_UNITS_SOLD",
}

// TopProductsSQL renders the top-products statement for exec's dialect.
func TopProductsSQL(exec warehouse.Executor, table types.TableRef) string {
	return fmt.Sprintf(topProductsSQL, exec.TableRef(table.String()), TopProductsLimit)
}

// TopProducts reads the highest-revenue products, best first. Equal revenues come back in
// whatever order the warehouse returns them.
func TopProducts(ctx context.Context, exec warehouse.Executor, table types.TableRef) ([]types.ProductMetricsRow, error) {
	if exec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "warehouse executor required")
	}
	if table.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products table required")
	}

	records, err := exec.Select(ctx, TopProductsSQL(exec, table))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products query failed").
			WithDetails(map[string]any{"table": table.String()})
	}

	rows := make([]types.ProductMetricsRow, 0, len(records))
	for i, record := range records {
		row, err := decodeRecord[types.ProductMetricsRow](table, i, record, productColumns)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
