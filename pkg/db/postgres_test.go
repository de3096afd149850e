package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
)

func newMockPostgresClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return &Client{conn: conn}, mock
}

func TestSelectPostgresFoldsIdentifiers(t *testing.T) {
	client, mock := newMockPostgresClient(t)

	const query = "SELECT TOTAL_ORDERS, TOTAL_REVENUE FROM analytics.daily_business_metrics ORDER BY ORDER_DATE DESC LIMIT 1"
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"total_orders", "total_revenue"}).AddRow(int64(1200), "45000.00"))

	records, err := client.Select(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "total_orders")
	assert.Contains(t, records[0], "total_revenue")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectPostgresErrorKeepsDetails(t *testing.T) {
	client, mock := newMockPostgresClient(t)

	mock.ExpectQuery("SELECT").WillReturnError(&pgconn.PgError{
		Code:      "42P01",
		Message:   `relation "analytics.product_performance_metrics" does not exist`,
		TableName: "product_performance_metrics",
	})

	_, err := client.Select(context.Background(), "SELECT MENU_ITEM_NAME FROM analytics.product_performance_metrics")
	require.Error(t, err)

	dump := pkgerrors.Dump(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products query failed"))
	assert.Equal(t, "42P01", dump.PGCode)
	assert.Equal(t, "product_performance_metrics", dump.PGTable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPingPostgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	mock.ExpectPing()
	require.NoError(t, (&Client{conn: conn}).Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
