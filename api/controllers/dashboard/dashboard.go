package dashboard

import (
	"bytes"
	"net/http"

	"github.com/angelmondragon/tastybytes-dashboard/api/responses"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/page"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/render"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
)

type topProductsResponse struct {
	Chart    *render.Chart  `json:"chart"`
	VegaLite map[string]any `json:"vega_lite"`
}

type dailyMetricsResponse struct {
	Cards []render.Card `json:"cards"`
}

// Page serves the HTML dashboard. Section failures are rendered in place, so the page
// itself answers 200 unless the template cannot be executed.
func Page(service dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var buf bytes.Buffer
		if err := page.Render(&buf, service.Page(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering dashboard page"))
			return
		}
		responses.WriteHTML(w, http.StatusOK, buf.Bytes())
	}
}

func TopProducts(service dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		chart, err := service.TopProducts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, topProductsResponse{Chart: chart, VegaLite: chart.VegaLite()})
	}
}

func DailyMetrics(service dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cards, err := service.DailyMetrics(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dailyMetricsResponse{Cards: cards})
	}
}
