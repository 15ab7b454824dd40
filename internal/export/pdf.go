package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/boqworks/boqworks/internal/boq"
	"github.com/boqworks/boqworks/report"
)

// documentData feeds the PDF template.
type documentData struct {
	Project    *boq.Project
	Totals     boq.Totals
	Categories []string
	Generated  string
}

var pdfTemplate = template.Must(template.New("boq_pdf").Funcs(template.FuncMap{
	"money": money,
	"qty": func(q *float64) string {
		if q == nil {
			return ""
		}
		return printer.Sprintf("%.2f", *q)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"lineUSD": func(item boq.Item) string {
		usd, _ := boq.LineTotal(item)
		return money(usd)
	},
	"lineZWG": func(item boq.Item) string {
		_, zwg := boq.LineTotal(item)
		return money(zwg)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #1a1a1a; }
h1 { font-size: 18px; margin-bottom: 0; }
h2 { font-size: 13px; border-bottom: 1px solid #999; padding-bottom: 2px; text-transform: capitalize; }
table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
th, td { text-align: left; padding: 3px 6px; border-bottom: 1px solid #ddd; }
th { background: #f2f2f2; }
td.num, th.num { text-align: right; }
.meta { color: #666; margin-bottom: 16px; }
.totals td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{ .Project.Name }}</h1>
<p class="meta">{{ .Project.BuildingType }} at {{ .Project.LocationType }} &middot; catalog {{ .Project.CatalogVersion }} &middot; generated {{ .Generated }}</p>
{{ range .Project.Milestones }}{{ if .Items }}
<h2>{{ .Stage }}</h2>
<table>
<tr><th>Material</th><th>Category</th><th class="num">Qty</th><th>Unit</th><th class="num">Actual USD</th><th class="num">Actual ZWG</th><th class="num">Total USD</th><th class="num">Total ZWG</th></tr>
{{ range .Items }}
<tr>
<td>{{ .MaterialName }}</td>
<td>{{ .Category }}</td>
<td class="num">{{ qty .Quantity }}</td>
<td>{{ .Unit }}</td>
<td class="num">{{ money .ActualPriceUSD }}</td>
<td class="num">{{ money .ActualPriceZWG }}</td>
<td class="num">{{ lineUSD . }}</td>
<td class="num">{{ lineZWG . }}</td>
</tr>
{{ end }}
</table>
{{ end }}{{ end }}
<h2>Totals</h2>
<table>
<tr><th>Category</th><th class="num">USD</th><th class="num">ZWG</th></tr>
{{ $totals := .Totals }}
{{ range .Categories }}
<tr><td>{{ . }}</td><td class="num">{{ money (index $totals.PerCategory .).USD }}</td><td class="num">{{ money (index $totals.PerCategory .).ZWG }}</td></tr>
{{ end }}
<tr class="totals"><td>Grand Total</td><td class="num">{{ money .Totals.Grand.USD }}</td><td class="num">{{ money .Totals.Grand.ZWG }}</td></tr>
</table>
</body>
</html>`))

// RenderPDF builds the BOQ document HTML and converts it through
// Gotenberg.
func RenderPDF(ctx context.Context, client *report.Client, project *boq.Project) ([]byte, error) {
	if !client.Enabled() {
		return nil, fmt.Errorf("export: pdf rendering not configured")
	}

	totals := boq.CalculateTotals(project.Milestones)
	data := documentData{
		Project:    project,
		Totals:     totals,
		Categories: sortedKeys(totals.PerCategory),
		Generated:  time.Now().UTC().Format("2 January 2006 15:04 MST"),
	}

	buf := &bytes.Buffer{}
	if err := pdfTemplate.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("export: render template: %w", err)
	}
	return client.RenderHTML(ctx, buf.String())
}
