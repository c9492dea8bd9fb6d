package reports

import (
	"net/http"

	"github.com/foomo/exporter/vo"
)

// URLResolver looks up the url of the resource, that referenced another one
type URLResolver interface {
	URLByID(uqID string) (u string, ok bool)
}

// AnalyzeBrokenLinks lists 404s and where they were linked from
func AnalyzeBrokenLinks(resources []vo.VisitedResource, urls URLResolver) (*SuperTable, error) {
	t, err := NewSuperTable(
		"404",
		"broken links",
		"no broken links found",
		[]*Column{
			{Key: "url", Name: "url", Width: 60},
			{Key: "source", Name: "found on", Width: 60},
		},
		"url",
		Ascending,
	)
	if err != nil {
		return nil, err
	}
	rows := []Row{}
	for _, res := range resources {
		if res.StatusCode != http.StatusNotFound {
			continue
		}
		source := ""
		if res.SourceUqID != "" && urls != nil {
			source, _ = urls.URLByID(res.SourceUqID)
		}
		rows = append(rows, Row{"url": res.URL, "source": source})
	}
	t.SetData(rows)
	return t, nil
}
