package report

import (
	"bytes"
	"html/template"

	"github.com/quietcheck/mood-server/internal/models"
)

// moodColors match the dot colors the client uses for each mood.
var moodColors = map[models.Mood]string{
	models.MoodWonderful: "#C8A97E",
	models.MoodCalm:      "#B8A06A",
	models.MoodNormal:    "#6BA68A",
	models.MoodTired:     "#8B7EAD",
	models.MoodAnxious:   "#E8664A",
	models.MoodHeavy:     "#636869",
}

const reportTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8">
<title>Mood Report</title>
<style>
  body { font-family: system-ui, sans-serif; background: #0f1115; color: rgba(255,255,255,0.9); padding: 40px; }
  .container { max-width: 800px; margin: 0 auto; }
  h1 { font-size: 28px; margin-bottom: 6px; }
  .subtitle { font-size: 13px; color: rgba(255,255,255,0.5); text-transform: uppercase; margin-bottom: 40px; }
  .card { background: rgba(255,255,255,0.04); border: 1px solid rgba(255,255,255,0.06); border-radius: 22px; padding: 28px; margin-bottom: 24px; }
  .section-title { font-size: 12px; font-weight: 600; text-transform: uppercase; color: rgba(255,255,255,0.4); margin-bottom: 20px; }
  .dot { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 10px; vertical-align: middle; }
  table { width: 100%; border-collapse: collapse; }
  th { text-align: left; padding: 12px 8px; font-size: 11px; color: rgba(255,255,255,0.4); text-transform: uppercase; border-bottom: 1px solid rgba(255,255,255,0.1); }
  td { padding: 14px 8px; font-size: 14px; border-bottom: 1px solid rgba(255,255,255,0.05); }
  @media print { body { padding: 0; margin: 10mm 15mm; } @page { size: A4 portrait; } }
</style></head><body>
<div class="container">
  <h1>Mood Report</h1>
  <div class="subtitle">{{.Report.From}} — {{.Report.To}}</div>

  <div class="card">
    <div class="section-title">Overview</div>
    {{range .Summary}}
    <span style="margin-right:24px;"><span class="dot" style="background:{{.Color}};"></span>{{.Label}}: <strong>{{.Count}}</strong></span>
    {{end}}
  </div>

  {{if .Report.Narratives}}
  <div class="card">
    <div class="section-title">Observations</div>
    {{range .Report.Narratives}}<div style="margin-bottom:8px;">• {{.}}</div>{{end}}
  </div>
  {{end}}

  <div class="card">
    <div class="section-title">Entries</div>
    <table>
      <thead><tr><th>Date</th><th>Mood</th><th>Note</th></tr></thead>
      <tbody>
      {{range .Report.Rows}}
        <tr>
          <td>{{.Date}}</td>
          <td><span class="dot" style="background:{{moodColor .Mood}};"></span>{{.Label}}</td>
          <td>{{.Note}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
  </div>
</div>
</body></html>`

type summaryItem struct {
	Label string
	Count int
	Color string
}

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"moodColor": func(m models.Mood) string { return moodColors[m] },
}).Parse(reportTemplate))

// RenderHTML turns the document model into a standalone printable page.
func RenderHTML(r Report) ([]byte, error) {
	summary := make([]summaryItem, 0, len(models.Moods))
	for _, m := range models.Moods {
		summary = append(summary, summaryItem{
			Label: models.MoodLabels[m],
			Count: r.Counts[m],
			Color: moodColors[m],
		})
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Report  Report
		Summary []summaryItem
	}{r, summary})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
