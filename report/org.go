package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradeboard/insights"
	"github.com/rustyeddy/tradeboard/journal"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/trade"
)

// OrgReport is everything the org-mode performance report shows.
type OrgReport struct {
	Title      string
	SnapshotID string
	Source     string
	Created    time.Time

	Summary  metrics.Summary
	Insights insights.Insights
	Daily    []metrics.DayValue
	Records  []trade.Record

	EquityPNG string
	DailyPNG  string

	// Journal appends one org entry per record when set.
	Journal bool
}

var orgFuncs = template.FuncMap{
	"opt": opt,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"rec":     recordAny,
	"journal": journal.FormatTradesOrg,
}

var orgTemplate = template.Must(template.New("report").Funcs(orgFuncs).Parse(OrgTemplate))

func recordAny(v any) string {
	switch r := v.(type) {
	case *trade.Record:
		return recordLine(r)
	case trade.Record:
		return recordLine(&r)
	}
	return "n/a"
}

// WriteOrgReport executes OrgTemplate for r.
func WriteOrgReport(w io.Writer, r OrgReport) error {
	if r.Title == "" {
		r.Title = "Trade Journal"
	}
	if err := orgTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("org report: %w", err)
	}
	return nil
}

const OrgTemplate = `* REPORT: {{.Title}}
:PROPERTIES:
:SNAPSHOT_ID: {{if .SnapshotID}}{{.SnapshotID}}{{else}}(not exported){{end}}
:SOURCE:      {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:START_CAP:   {{printf "%.2f" .Summary.StartCapital}}
:CURRENT:     {{printf "%.2f" .Summary.CurrentValue}}
:NET_DELTA:   {{printf "%.2f" .Summary.NetDelta}}
:RETURN_PCT:  {{opt .Summary.ReturnPct "%.2f"}}
:MAX_DD_PCT:  {{opt .Summary.MaxDDPct "%.2f"}}
:TRADES:      {{.Summary.Trades}}
:WINS:        {{.Summary.Wins}}
:LOSSES:      {{.Summary.Losses}}
:HIT_RATIO:   {{opt .Summary.HitRatio "%.2f"}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Total Gain:       *{{printf "%.2f" .Summary.TotalGain}}*
- Total Loss:       *{{printf "%.2f" .Summary.TotalLoss}}*
- Total Fees:       *{{printf "%.2f" .Summary.TotalFees}}*
- Net Delta:        *{{printf "%.2f" .Summary.NetDelta}}*
- Hit Ratio:        *{{opt .Summary.HitRatio "%.2f%%"}}*
- Average Gain:     *{{opt .Summary.AverageGain "%.2f"}}*
- Average Loss:     *{{opt .Summary.AverageLoss "%.2f"}}*

** Equity Curve
{{- if .EquityPNG }}
[[file:{{.EquityPNG}}]]
{{- else }}
# (optional) insert an exported equity curve image here
{{- end }}
{{- if .DailyPNG }}
[[file:{{.DailyPNG}}]]
{{- end }}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Summary.Wins}} |
| Losses  | {{.Summary.Losses}} |
| Total   | {{.Summary.Trades}} |

** Highlights
{{- with .Insights }}
{{- if .MostFrequent }}
- Most traded:  {{.MostFrequent.Instrument}} ({{.MostFrequent.Count}} trades)
{{- end }}
- Best P&L:     {{rec .BestPnL}}
- Worst P&L:    {{rec .WorstPnL}}
- Best return:  {{rec .BestReturn}}
- Worst return: {{rec .WorstReturn}}
{{- if .Longest }}
- Longest hold: {{rec .Longest.Record}} ({{.Longest.Duration}})
{{- end }}
{{- if .Ranking }}

** Instruments
| Instrument | P&L | Trades |
|------------+-----+--------|
{{- range .Ranking }}
| {{.Instrument}} | {{printf "%.2f" .PnL}} | {{.Trades}} |
{{- end }}
{{- end }}
{{- end }}
{{- if .Daily }}

** Daily Net
| Day | Net |
|-----+-----|
{{- range .Daily }}
| {{.Day}} | {{printf "%.2f" .Value}} |
{{- end }}
{{- end }}
{{- if .Journal }}

{{ journal .Records }}
{{- end }}
`
