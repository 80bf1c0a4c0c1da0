package api

import (
	"fmt"
	"html/template"

	models "GoldBrief/internal/domain/models"
	"GoldBrief/internal/usecase"
)

type pageData struct {
	View models.SnapshotView
	News []models.NewsItem
}

func newPageData(snap models.Snapshot) pageData {
	v := models.NewSnapshotView(snap)
	news := v.News
	if len(news) > usecase.TopNews {
		news = news[:usecase.TopNews]
	}
	return pageData{View: v, News: news}
}

// num renders an optional value with two decimals, "NA" when absent.
func num(v *float64) string {
	if v == nil {
		return "NA"
	}
	return fmt.Sprintf("%.2f", *v)
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"num": num,
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>XAUUSD Morning Dashboard</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem;max-width:72rem}
section{margin-bottom:1.5rem}
table{border-collapse:collapse}
td,th{border:1px solid #ccc;padding:.25rem .5rem;text-align:left}
.muted{color:#777}
</style>
</head>
<body>
<h1>XAUUSD Morning Dashboard - London Open</h1>
<p class="muted">Generated {{.View.GeneratedAt.Format "2006-01-02 15:04 MST"}} · <a href="/">Refresh</a></p>

<section>
<h2>Live Prices</h2>
<p>Gold (XAUUSD): {{num .View.Gold.Value}} USD ({{.View.Gold.Provenance}})</p>
<p>DXY: {{num .View.Index}}</p>
</section>

<section>
<h2>Yields</h2>
<p>10y nominal: {{num .View.Nominal.Last}}</p>
<p>10y real: {{num .View.Real.Last}}</p>
</section>

<section>
<h2>Economic Calendar</h2>
{{if .View.Today}}
<table>
<tr><th>Date (UTC)</th><th>Country</th><th>Event</th><th>Importance</th><th>Actual</th><th>Forecast</th><th>Previous</th></tr>
{{range .View.Today}}<tr><td>{{.Date.Format "15:04"}}</td><td>{{.Country}}</td><td>{{.Title}}</td><td>{{.Importance}}</td><td>{{.Actual}}</td><td>{{.Forecast}}</td><td>{{.Previous}}</td></tr>
{{end}}</table>
{{else}}<p class="muted">No calendar data.</p>{{end}}
</section>

<section>
<h2>Gold &amp; USD News / Geopolitics</h2>
{{if .News}}<ul>
{{range .News}}<li><a href="{{.URL}}">{{.Title}}</a> - {{.Source}}</li>
{{end}}</ul>
{{else}}<p class="muted">No news found.</p>{{end}}
</section>

<section>
<h2>Retail Sentiment</h2>
{{with .View.Sentiment}}<p>Long: {{.LongPct}}%, Short: {{.ShortPct}}% ({{.Source}})</p>
{{else}}<p class="muted">No sentiment data available.</p>{{end}}
</section>

<section>
<h2>Outlook</h2>
<h3>Yesterday</h3><ul>{{range .View.Outlook.Yesterday}}<li>{{.}}</li>{{end}}</ul>
<h3>Current</h3><ul>{{range .View.Outlook.Current}}<li>{{.}}</li>{{end}}</ul>
<h3>Future</h3><ul>{{range .View.Outlook.Future}}<li>{{.}}</li>{{end}}</ul>
<h3>Possible Outcomes</h3><ul>{{range .View.Outlook.Possible}}<li>{{.}}</li>{{end}}</ul>
</section>
</body>
</html>
`))
