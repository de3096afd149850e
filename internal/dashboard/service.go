package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/query"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/render"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/metrics"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/warehouse"
	"golang.org/x/sync/errgroup"
)

// Query names used for metrics labels and log fields.
const (
	QueryTopProducts  = "top_products"
	QueryDailyMetrics = "daily_metrics"
)

// Service reads the warehouse and renders the dashboard.
type Service interface {
	// Page renders both sections. A failing section carries its error; the other still renders.
	Page(ctx context.Context) *Page
	// TopProducts renders the top-products chart.
	TopProducts(ctx context.Context) (*render.Chart, error)
	// DailyMetrics renders the KPI cards for the most recent day; empty when there is no data.
	DailyMetrics(ctx context.Context) ([]render.Card, error)
}

// ChartSection is the top-products region of the page.
type ChartSection struct {
	Chart *render.Chart
	Err   error
}

// MetricsSection is the daily KPI region of the page.
type MetricsSection struct {
	Cards []render.Card
	Err   error
}

// Page is everything a single dashboard render needs.
type Page struct {
	Products ChartSection
	Metrics  MetricsSection
}

type ServiceParams struct {
	Executor      warehouse.Executor
	Tables        types.Tables
	ParallelReads bool
	Metrics       *metrics.QueryMetrics
	Logger        *logger.Logger
}

type service struct {
	exec     warehouse.Executor
	tables   types.Tables
	parallel bool
	metrics  *metrics.QueryMetrics
	logg     *logger.Logger
}

// NewService wires the dashboard reads to an executor.
func NewService(params ServiceParams) (Service, error) {
	if params.Executor == nil {
		return nil, fmt.Errorf("warehouse executor required")
	}
	if params.Tables.Products.IsZero() {
		return nil, fmt.Errorf("products table required")
	}
	if params.Tables.DailyMetrics.IsZero() {
		return nil, fmt.Errorf("daily metrics table required")
	}
	return &service{
		exec:     params.Executor,
		tables:   params.Tables,
		parallel: params.ParallelReads,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

func (s *service) Page(ctx context.Context) *Page {
	page := &Page{}
	renderProducts := func() {
		page.Products.Chart, page.Products.Err = s.TopProducts(ctx)
	}
	renderMetrics := func() {
		page.Metrics.Cards, page.Metrics.Err = s.DailyMetrics(ctx)
	}

	if !s.parallel {
		renderProducts()
		renderMetrics()
		return page
	}

	// Sections own their errors, so neither goroutine fails the group.
	var g errgroup.Group
	g.Go(func() error { renderProducts(); return nil })
	g.Go(func() error { renderMetrics(); return nil })
	_ = g.Wait()
	return page
}

func (s *service) TopProducts(ctx context.Context) (*render.Chart, error) {
	ctx = s.sectionContext(ctx, QueryTopProducts, s.tables.Products)

	started := time.Now()
	rows, err := query.TopProducts(ctx, s.exec, s.tables.Products)
	s.metrics.ObserveDuration(QueryTopProducts, time.Since(started))
	if err != nil {
		s.fail(ctx, QueryTopProducts, err)
		return nil, err
	}
	s.metrics.IncSuccess(QueryTopProducts, len(rows))

	chart, err := render.BuildChart(rows)
	if err != nil {
		s.logError(ctx, "dashboard.top_products.render_failed", err)
		return nil, err
	}
	return chart, nil
}

func (s *service) DailyMetrics(ctx context.Context) ([]render.Card, error) {
	ctx = s.sectionContext(ctx, QueryDailyMetrics, s.tables.DailyMetrics)

	started := time.Now()
	row, err := query.LatestDailyMetrics(ctx, s.exec, s.tables.DailyMetrics)
	s.metrics.ObserveDuration(QueryDailyMetrics, time.Since(started))
	if err != nil {
		s.fail(ctx, QueryDailyMetrics, err)
		return nil, err
	}

	rows := 0
	if row != nil {
		rows = 1
	} else if s.logg != nil {
		s.logg.Info(ctx, "dashboard.daily_metrics.empty")
	}
	s.metrics.IncSuccess(QueryDailyMetrics, rows)
	return render.BuildCards(row), nil
}

func (s *service) sectionContext(ctx context.Context, section string, table types.TableRef) context.Context {
	if s.logg == nil {
		return ctx
	}
	ctx = s.logg.WithSection(ctx, section)
	return s.logg.WithField(ctx, "table", table.String())
}

func (s *service) fail(ctx context.Context, name string, err error) {
	s.metrics.IncFailure(name, string(pkgerrors.CodeOf(err)))
	s.logError(ctx, "dashboard."+name+".query_failed", err)
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), msg, err)
}
