package types

import "strings"

// TableRef identifies a warehouse table, e.g. "tasty_bytes_db.analytics.daily_business_metrics".
type TableRef string

func (t TableRef) String() string {
	return strings.TrimSpace(string(t))
}

func (t TableRef) IsZero() bool {
	return t.String() == ""
}

// Tables holds the two source tables the dashboard reads.
type Tables struct {
	Products     TableRef
	DailyMetrics TableRef
}
