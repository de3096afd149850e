package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/render"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/types"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	pkgtypes "github.com/angelmondragon/tastybytes-dashboard/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	chart    *render.Chart
	chartErr error
	cards    []render.Card
	cardsErr error
}

func (s *stubService) Page(ctx context.Context) *dashboard.Page {
	return &dashboard.Page{
		Products: dashboard.ChartSection{Chart: s.chart, Err: s.chartErr},
		Metrics:  dashboard.MetricsSection{Cards: s.cards, Err: s.cardsErr},
	}
}

func (s *stubService) TopProducts(context.Context) (*render.Chart, error) {
	return s.chart, s.chartErr
}

func (s *stubService) DailyMetrics(context.Context) ([]render.Card, error) {
	return s.cards, s.cardsErr
}

func sampleChart(t *testing.T) *render.Chart {
	t.Helper()
	chart, err := render.BuildChart([]types.ProductMetricsRow{
		{Name: "Taco", TotalRevenue: decimal.NewFromInt(3_000_000), TotalProfit: decimal.NewFromInt(900_000), AvgProfitMarginPct: decimal.NewFromInt(30), TotalUnitsSold: 8000},
		{Name: "Burger", TotalRevenue: decimal.NewFromInt(5_000_000), TotalProfit: decimal.NewFromInt(1_000_000), AvgProfitMarginPct: decimal.NewFromInt(20), TotalUnitsSold: 10000},
	})
	require.NoError(t, err)
	return chart
}

func sampleCards() []render.Card {
	return render.BuildCards(&types.DailyMetricsRow{
		TotalOrders:        1200,
		TotalRevenue:       decimal.NewFromInt(45000),
		TotalProfit:        decimal.NewFromInt(9000),
		AvgProfitMarginPct: decimal.NewFromInt(20),
		UniqueCustomers:    800,
		TotalItemsSold:     3000,
	})
}

func TestPageAlwaysAnswersOK(t *testing.T) {
	svc := &stubService{
		chartErr: pkgerrors.New(pkgerrors.CodeDependency, "top products query failed"),
		cards:    sampleCards(),
	}

	resp := httptest.NewRecorder()
	Page(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/html"))
	body := resp.Body.String()
	assert.Contains(t, body, "Could not load top products")
	assert.Contains(t, body, "1,200")
}

func TestTopProductsJSON(t *testing.T) {
	svc := &stubService{chart: sampleChart(t)}

	resp := httptest.NewRecorder()
	TopProducts(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/top-products", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data struct {
			Chart struct {
				Title string `json:"title"`
				Bars  []struct {
					Name    string `json:"name"`
					Tooltip []struct {
						Title string `json:"title"`
						Value string `json:"value"`
					} `json:"tooltip"`
				} `json:"bars"`
			} `json:"chart"`
			VegaLite map[string]any `json:"vega_lite"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	chart := envelope.Data.Chart
	assert.Equal(t, "Top 10 Products by Revenue", chart.Title)
	require.Len(t, chart.Bars, 2)
	assert.Equal(t, "Burger", chart.Bars[0].Name)
	assert.Equal(t, "$5,000,000", chart.Bars[0].Tooltip[1].Value)
	assert.Equal(t, "20.0%", chart.Bars[0].Tooltip[3].Value)
	assert.NotEmpty(t, envelope.Data.VegaLite["encoding"])
}

func TestTopProductsErrorMapsToStatus(t *testing.T) {
	svc := &stubService{chartErr: pkgerrors.Wrap(pkgerrors.CodeSchemaMismatch, errors.New("column missing"), "bad row")}

	resp := httptest.NewRecorder()
	TopProducts(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/top-products", nil))
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var body pkgtypes.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(pkgerrors.CodeSchemaMismatch), body.Error.Code)
}

func TestDailyMetricsJSON(t *testing.T) {
	resp := httptest.NewRecorder()
	DailyMetrics(&stubService{cards: sampleCards()}, nil).
		ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/daily-metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data struct {
			Cards []render.Card `json:"cards"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, sampleCards(), envelope.Data.Cards)
}

func TestDailyMetricsEmpty(t *testing.T) {
	resp := httptest.NewRecorder()
	DailyMetrics(&stubService{cards: render.BuildCards(nil)}, nil).
		ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/daily-metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"cards":[]}}`, resp.Body.String())
}

func TestDailyMetricsDependencyFailure(t *testing.T) {
	resp := httptest.NewRecorder()
	DailyMetrics(&stubService{cardsErr: pkgerrors.New(pkgerrors.CodeDependency, "daily metrics query failed")}, nil).
		ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/daily-metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
