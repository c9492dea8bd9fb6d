package reports

import (
	"sort"
	"time"

	"github.com/foomo/exporter/vo"
)

func formatDuration(value any) string {
	d, ok := value.(time.Duration)
	if !ok {
		return ""
	}
	return d.Round(time.Millisecond).String()
}

// AnalyzeSlowest lists the limit slowest resources, limit <= 0 lists all
func AnalyzeSlowest(resources []vo.VisitedResource, limit int) (*SuperTable, error) {
	t, err := NewSuperTable(
		"slowest",
		"slowest resources",
		"nothing was visited",
		[]*Column{
			{Key: "duration", Name: "duration", Width: 10, Formatter: formatDuration},
			{Key: "status", Name: "status", Width: 6, Formatter: func(value any) string {
				code, _ := value.(int)
				return statusLabel(code)
			}},
			{Key: "url", Name: "url", Width: 80},
		},
		"duration",
		Descending,
	)
	if err != nil {
		return nil, err
	}
	scores := append([]vo.VisitedResource{}, resources...)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Duration > scores[j].Duration
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	rows := make([]Row, len(scores))
	for i, res := range scores {
		rows[i] = Row{"duration": res.Duration, "status": res.StatusCode, "url": res.URL}
	}
	t.SetData(rows)
	return t, nil
}
