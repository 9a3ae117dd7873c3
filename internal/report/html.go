package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NordCoder/Coloscope/internal/domain/result"
)

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"rowClass": func(s result.Status) string { return strings.ToLower(string(s)) },
	"latency": func(ms float64) string {
		if ms == 0 {
			return "N/A"
		}
		return fmt.Sprintf("%.2f", ms)
	},
	"pct": func(p float64) string { return fmt.Sprintf("%.1f", p) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Coloscope Report</title>
    <link rel="stylesheet" href="https://cdn.datatables.net/1.13.6/css/jquery.dataTables.min.css">
    <style>
        body { font-family: Arial, sans-serif; margin: 2em; background: #1a1a1a; color: #eee; }
        table { background: #2d2d2d; width: 100%; }
        th { background: #007acc; color: white; }
        td { padding: 8px; border-bottom: 1px solid #444; }
        .colo { background: #0f5132 !important; color: #d4edda; font-weight: bold; }
        .slow { background: #664d03 !important; color: #fff3cd; }
        .fail { background: #842029 !important; color: #f8d7da; }
        .summary { margin: 1em 0 2em 0; padding: 1em; background: #2d2d2d; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>Coloscope Latency Report &ndash; {{.Timestamp}}</h1>
    <div class="summary">
        <p><strong>{{.Summary.Colo}}</strong> / <strong>{{.Summary.Total}}</strong> IPs under {{.Threshold}} ms &rarr; <strong>{{pct .Summary.Percent}}% CO-LOCATED</strong></p>
    </div>
    <table id="t">
        <thead>
            <tr>
                <th>Constant</th>
                <th>Category</th>
                <th>Domain</th>
                <th>IP</th>
                <th>Latency (ms)</th>
                <th>Status</th>
                <th>AWS Region</th>
                <th>Country</th>
                <th>City</th>
            </tr>
        </thead>
        <tbody>
{{- range .Results}}
            <tr class="{{rowClass .Status}}">
                <td>{{.Name}}</td>
                <td>{{.Category}}</td>
                <td>{{.Domain}}</td>
                <td>{{.IP}}</td>
                <td>{{latency .LatencyMs}}</td>
                <td>{{.Status}}</td>
                <td>{{.AWSRegion}}</td>
                <td>{{.Country}}</td>
                <td>{{.City}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <script src="https://code.jquery.com/jquery-3.7.1.min.js"></script>
    <script src="https://cdn.datatables.net/1.13.6/js/jquery.dataTables.min.js"></script>
    <script>
        $(() => $('#t').DataTable({
            "pageLength": 100,
            "order": [[4, "asc"]]
        }));
    </script>
</body>
</html>
`))

type htmlData struct {
	Timestamp string
	Threshold float64
	Summary   result.Summary
	Results   []result.Result
}

// RenderHTML builds the report page: summary header plus one row per
// result, colored by status, sortable client-side via DataTables.
func RenderHTML(results []result.Result, threshold float64) (string, error) {
	var sb strings.Builder
	err := htmlTmpl.Execute(&sb, htmlData{
		Timestamp: time.Now().Format("2006-01-02 15:04"),
		Threshold: threshold,
		Summary:   result.Summarize(results),
		Results:   results,
	})
	if err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return sb.String(), nil
}

// WriteHTML renders and writes the report, creating parent directories
// as needed.
func WriteHTML(path string, results []result.Result, threshold float64) error {
	html, err := RenderHTML(results, threshold)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}
