package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Warehouse WarehouseConfig
	GCP       GCPConfig
	BigQuery  BigQueryConfig
	DB        DBConfig
	Dashboard DashboardConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Warehouse.Driver = strings.ToLower(strings.TrimSpace(c.Warehouse.Driver))
	switch c.Warehouse.Driver {
	case WarehouseDriverBigQuery:
		if strings.TrimSpace(c.GCP.ProjectID) == "" {
			return fmt.Errorf("%s is required for the %s warehouse", EnvGCPProjectID, WarehouseDriverBigQuery)
		}
	case WarehouseDriverPostgres, WarehouseDriverSQLite:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the %s warehouse", EnvDBDSN, c.Warehouse.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvWarehouseDriver, c.Warehouse.Driver)
	}

	tables := []struct{ env, ref string }{
		{EnvProductsTable, c.Dashboard.ProductsTable},
		{EnvDailyMetricsTable, c.Dashboard.DailyMetricsTable},
	}
	for _, table := range tables {
		ref := strings.TrimSpace(table.ref)
		if ref == "" {
			return fmt.Errorf("%s must not be blank", table.env)
		}
		// sqlite only understands [schema.]table; the default refs carry a project prefix.
		if c.Warehouse.Driver == WarehouseDriverSQLite && strings.Count(ref, ".") > 1 {
			return fmt.Errorf("%s %q has too many parts for the %s warehouse; use table or schema.table",
				table.env, ref, WarehouseDriverSQLite)
		}
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"TASTYBYTES_APP_ENV" required:"true"`
	Port         string `envconfig:"TASTYBYTES_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TASTYBYTES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TASTYBYTES_LOG_WARN_STACK" default:"false"`
}

// IsDev switches logging to the console writer.
func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// WarehouseConfig selects the backend the dashboard reads from.
type WarehouseConfig struct {
	Driver string `envconfig:"TASTYBYTES_WAREHOUSE_DRIVER" default:"bigquery"`
}

func (w WarehouseConfig) IsBigQuery() bool {
	return strings.EqualFold(w.Driver, WarehouseDriverBigQuery)
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TASTYBYTES_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TASTYBYTES_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TASTYBYTES_GOOGLE_APPLICATION_CREDENTIALS"`
}

type BigQueryConfig struct {
	Location string `envconfig:"TASTYBYTES_BIGQUERY_LOCATION"`
}

type DBConfig struct {
	DSN string `envconfig:"TASTYBYTES_DB_DSN"`

	MaxOpenConns    int           `envconfig:"TASTYBYTES_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"TASTYBYTES_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"TASTYBYTES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TASTYBYTES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// DashboardConfig names the two pre-aggregated source tables.
type DashboardConfig struct {
	ProductsTable     string `envconfig:"TASTYBYTES_DASHBOARD_PRODUCTS_TABLE" default:"tasty_bytes_db.analytics.product_performance_metrics"`
	DailyMetricsTable string `envconfig:"TASTYBYTES_DASHBOARD_DAILY_METRICS_TABLE" default:"tasty_bytes_db.analytics.daily_business_metrics"`
	ParallelReads     bool   `envconfig:"TASTYBYTES_DASHBOARD_PARALLEL_READS" default:"true"`
}

type CORSConfig struct {
	Origins []string `envconfig:"TASTYBYTES_CORS_ORIGINS" default:"http://localhost:3000"`
}
