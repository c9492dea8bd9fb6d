package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/foomo/exporter/store"
	"github.com/foomo/exporter/vo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTestCrawl(t *testing.T, dir string) (configFile, dbFile string) {
	t.Helper()
	configFile = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
target: https://example.com/
exportdir: `+filepath.Join(dir, "out")+`
reports: json
`), 0644))

	dbFile = filepath.Join(dir, "crawl.db")
	db, err := store.OpenSQLite(dbFile)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	home := "<html><body><h1>Home</h1><p>Hello <a href=\"/private/page\">private</a></p></body></html>"
	robots := "User-agent: *\nDisallow: /private/\n"
	require.NoError(t, db.Save(ctx, vo.VisitedResource{
		UqID: "1", URL: "https://example.com/", StatusCode: 200, ContentType: vo.ContentTypeHTML,
	}, &home))
	require.NoError(t, db.Save(ctx, vo.VisitedResource{
		UqID: "2", URL: "https://example.com/robots.txt", StatusCode: 200, ContentType: vo.ContentTypeDocument, SourceAttr: vo.SourceAHref,
	}, &robots))
	require.NoError(t, db.Save(ctx, vo.VisitedResource{
		UqID: "3", URL: "https://example.com/private/page", StatusCode: 404, ContentType: vo.ContentTypeHTML, SourceUqID: "1",
	}, nil))
	return configFile, dbFile
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	configFile, dbFile := writeTestCrawl(t, dir)
	metricsFile := filepath.Join(dir, "metrics.prom")
	stdout := &bytes.Buffer{}

	err := run(context.Background(), &options{
		Config:      configFile,
		DB:          dbFile,
		MetricsFile: metricsFile,
		UserAgent:   "*",
		Slowest:     5,
	}, zap.NewNop(), stdout)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "out", "index.md"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "index.html"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "robots.txt"))

	report := struct {
		Tables []struct {
			AplCode string              `json:"aplCode"`
			Rows    []map[string]string `json:"rows"`
		} `json:"tables"`
		Summary []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"summary"`
	}{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	rows := map[string]int{}
	for _, table := range report.Tables {
		rows[table.AplCode] = len(table.Rows)
	}
	assert.Equal(t, 1, rows["404"])
	assert.Equal(t, 1, rows["robots"])
	assert.Equal(t, 3, rows["slowest"])
	assert.Equal(t, "exported", report.Summary[2].Label)
	assert.Equal(t, "1", report.Summary[2].Value)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `exporter_resources_total{content_type="html"} 1`)
}

func TestRunHTMLReportFile(t *testing.T) {
	dir := t.TempDir()
	configFile, dbFile := writeTestCrawl(t, dir)
	reportFile := filepath.Join(dir, "report.html")

	err := run(context.Background(), &options{
		Config:     configFile,
		DB:         dbFile,
		Reports:    "html",
		ReportFile: reportFile,
	}, zap.NewNop(), &bytes.Buffer{})
	require.NoError(t, err)
	html, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h2>broken links</h2>")
}

func TestRunMissingConfig(t *testing.T) {
	err := run(context.Background(), &options{Config: "does-not-exist.yaml"}, zap.NewNop(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "config")
}
