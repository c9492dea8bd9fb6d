package reports

import (
	"fmt"

	"github.com/foomo/exporter/vo"
)

// AnalyzePerformance groups response times into the buckets of vo.GetBucketList
func AnalyzePerformance(resources []vo.VisitedResource) (*SuperTable, error) {
	t, err := NewSuperTable(
		"performance",
		"performance buckets",
		"nothing was visited",
		[]*Column{
			{Key: "order", Name: "#", Width: 2},
			{Key: "bucket", Name: "bucket", Width: 10},
			{Key: "range", Name: "range", Width: 18},
			{Key: "count", Name: "count", Width: 8},
			{Key: "percent", Name: "%", Width: 5, Formatter: func(value any) string {
				p, _ := value.(float64)
				return fmt.Sprintf("%.0f%%", p)
			}},
		},
		"order",
		Ascending,
	)
	if err != nil {
		return nil, err
	}
	t.Position = PositionBeforeURLTable
	if len(resources) == 0 {
		return t, nil
	}
	rows := []Row{}
	for i, bucket := range vo.GetBucketList() {
		count := 0
		for _, res := range resources {
			if bucket.Contains(res.Duration) {
				count++
			}
		}
		rows = append(rows, Row{
			"order":   i,
			"bucket":  bucket.Name,
			"range":   fmt.Sprint(bucket.From, " => ", bucket.To),
			"count":   count,
			"percent": float64(count*100) / float64(len(resources)),
		})
	}
	t.SetData(rows)
	return t, nil
}
