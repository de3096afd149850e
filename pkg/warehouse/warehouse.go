// Package warehouse selects and opens the read-only backend the dashboard queries.
package warehouse

import (
	"context"
	"fmt"

	"github.com/angelmondragon/tastybytes-dashboard/pkg/bigquery"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/config"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/db"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
	"go.uber.org/multierr"
)

// Executor runs a single SELECT and returns its rows keyed by column name.
type Executor interface {
	Select(ctx context.Context, sql string) ([]map[string]any, error)
	// TableRef renders a table identifier in the backend's SQL dialect.
	TableRef(name string) string
}

// Warehouse is an Executor with a lifecycle and a readiness check.
type Warehouse interface {
	Executor
	Ping(ctx context.Context) error
	Close() error
}

type sqlWarehouse struct {
	*db.Client
}

func (w sqlWarehouse) Select(ctx context.Context, sql string) ([]map[string]any, error) {
	return w.Client.Select(ctx, sql)
}

// Open connects to the configured backend. BigQuery verifies every table up front.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Warehouse, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Warehouse.IsBigQuery() {
		tables := []string{cfg.Dashboard.ProductsTable, cfg.Dashboard.DailyMetricsTable}
		client, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, tables, logg)
		if err != nil {
			return nil, fmt.Errorf("opening bigquery warehouse: %w", err)
		}
		return client, nil
	}
	switch cfg.Warehouse.Driver {
	case config.WarehouseDriverPostgres, config.WarehouseDriverSQLite:
		client, err := db.New(ctx, cfg.Warehouse.Driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("opening %s warehouse: %w", cfg.Warehouse.Driver, err)
		}
		return sqlWarehouse{Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.Warehouse.Driver)
	}
}

// CloseAll closes every closer and combines their errors.
func CloseAll(closers ...interface{ Close() error }) error {
	var err error
	for _, c := range closers {
		if c == nil {
			continue
		}
		err = multierr.Append(err, c.Close())
	}
	return err
}
