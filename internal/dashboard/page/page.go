// Package page renders the dashboard as a single HTML document.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard"
	"github.com/angelmondragon/tastybytes-dashboard/internal/dashboard/render"
	pkgerrors "github.com/angelmondragon/tastybytes-dashboard/pkg/errors"
)

const (
	Title          = "Tasty Bytes Analytics"
	Heading        = "🍔 Tasty Bytes Business Dashboard"
	MetricsHeading = "📊 Today's Key Metrics"
)

//go:embed templates/dashboard.html.tmpl
var templates embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templates, "templates/dashboard.html.tmpl"))

type chartView struct {
	Failed bool
	Notice string
	Chart  *render.Chart
	Spec   map[string]any
}

type metricsView struct {
	Failed bool
	Notice string
	Cards  []render.Card
}

type view struct {
	Title          string
	Heading        string
	ChartHeading   string
	MetricsHeading string
	Products       chartView
	Metrics        metricsView
}

// Render writes the dashboard document for p. Failed sections show a notice in place
// of their content.
func Render(w io.Writer, p *dashboard.Page) error {
	if p == nil {
		p = &dashboard.Page{}
	}

	v := view{
		Title:          Title,
		Heading:        Heading,
		ChartHeading:   render.ChartTitle,
		MetricsHeading: MetricsHeading,
	}

	switch {
	case p.Products.Err != nil:
		v.Products = chartView{Failed: true, Notice: notice("top products", p.Products.Err)}
	case p.Products.Chart == nil:
		v.Products = chartView{Failed: true, Notice: "Top products are unavailable."}
	default:
		v.Products = chartView{Chart: p.Products.Chart, Spec: p.Products.Chart.VegaLite()}
	}

	if p.Metrics.Err != nil {
		v.Metrics = metricsView{Failed: true, Notice: notice("today's metrics", p.Metrics.Err)}
	} else {
		v.Metrics = metricsView{Cards: p.Metrics.Cards}
	}

	return dashboardTemplate.Execute(w, v)
}

// notice is the user-facing text for a failed section; internals stay in the logs.
func notice(section string, err error) string {
	meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
	return fmt.Sprintf("Could not load %s: %s.", section, meta.PublicMessage)
}
