package config

const EnvPrefix = "TASTYBYTES"

const AppEnvDev = "dev"

const (
	WarehouseDriverBigQuery = "bigquery"
	WarehouseDriverPostgres = "postgres"
	WarehouseDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv                 = "TASTYBYTES_APP_ENV"
	EnvPort                   = "TASTYBYTES_APP_PORT"
	EnvLogLevel               = "TASTYBYTES_LOG_LEVEL"
	EnvWarehouseDriver        = "TASTYBYTES_WAREHOUSE_DRIVER"
	EnvGCPProjectID           = "TASTYBYTES_GCP_PROJECT_ID"
	EnvGCPCredentialsJSON     = "TASTYBYTES_GCP_CREDENTIALS_JSON"
	EnvGoogleAppCredentials   = "TASTYBYTES_GOOGLE_APPLICATION_CREDENTIALS"
	EnvBigQueryLocation       = "TASTYBYTES_BIGQUERY_LOCATION"
	EnvDBDSN                  = "TASTYBYTES_DB_DSN"
	EnvProductsTable          = "TASTYBYTES_DASHBOARD_PRODUCTS_TABLE"
	EnvDailyMetricsTable      = "TASTYBYTES_DASHBOARD_DAILY_METRICS_TABLE"
	EnvDashboardParallelReads = "TASTYBYTES_DASHBOARD_PARALLEL_READS"
	EnvCORSOrigins            = "TASTYBYTES_CORS_ORIGINS"
)

const (
	DefaultProductsTable     = "tasty_bytes_db.analytics.product_performance_metrics"
	DefaultDailyMetricsTable = "tasty_bytes_db.analytics.daily_business_metrics"
)
