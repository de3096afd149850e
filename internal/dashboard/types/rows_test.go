package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRevenueMillions(t *testing.T) {
	row := ProductMetricsRow{TotalRevenue: decimal.NewFromInt(2_500_000)}
	assert.True(t, row.RevenueMillions().Equal(decimal.RequireFromString("2.5")))

	row = ProductMetricsRow{TotalRevenue: decimal.RequireFromString("1234567.89")}
	assert.Equal(t, "1.23456789", row.RevenueMillions().String())
}

func TestTableRef(t *testing.T) {
	assert.Equal(t, "a.b.c", TableRef(" a.b.c ").String())
	assert.True(t, TableRef("  ").IsZero())
	assert.False(t, TableRef("a.b").IsZero())
}
