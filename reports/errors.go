package reports

import (
	"strconv"

	"github.com/foomo/exporter/vo"
)

// AnalyzeErrors lists everything, that came back with an error status
func AnalyzeErrors(resources []vo.VisitedResource) (*SuperTable, error) {
	t, err := NewSuperTable(
		"errors",
		"errors",
		"no errors",
		[]*Column{
			{Key: "status", Name: "status", Width: 6},
			{Key: "url", Name: "url", Width: 80},
			{Key: "type", Name: "type", Width: 10},
		},
		"status",
		Ascending,
	)
	if err != nil {
		return nil, err
	}
	rows := []Row{}
	for _, res := range resources {
		if res.StatusCode >= 400 {
			rows = append(rows, Row{"status": res.StatusCode, "url": res.URL, "type": res.ContentType.String()})
		}
	}
	t.SetData(rows)
	return t, nil
}

// AnalyzeStatusCodes counts resources per status code
func AnalyzeStatusCodes(resources []vo.VisitedResource) (*SuperTable, error) {
	t, err := NewSuperTable(
		"status-codes",
		"status codes",
		"nothing was visited",
		[]*Column{
			{Key: "status", Name: "status", Width: 6},
			{Key: "count", Name: "count", Width: 8},
		},
		"status",
		Ascending,
	)
	if err != nil {
		return nil, err
	}
	t.Position = PositionBeforeURLTable
	statusMap := map[int]int{}
	for _, res := range resources {
		statusMap[res.StatusCode]++
	}
	rows := []Row{}
	for code, count := range statusMap {
		rows = append(rows, Row{"status": code, "count": count})
	}
	t.SetData(rows)
	return t, nil
}

func statusLabel(code int) string {
	if code == 0 {
		return "-"
	}
	return strconv.Itoa(code)
}
