package reports

import (
	"net/url"
	"strings"

	"github.com/foomo/exporter/vo"
	"github.com/temoto/robotstxt"
)

// AnalyzeRobots lists visited urls of the initial host, that robots.txt
// disallows for agent
func AnalyzeRobots(resources []vo.VisitedResource, data *robotstxt.RobotsData, initialHost, agent string) (*SuperTable, error) {
	t, err := NewSuperTable(
		"robots",
		"disallowed by robots.txt",
		"robots.txt does not disallow any visited url",
		[]*Column{
			{Key: "url", Name: "url", Width: 80},
			{Key: "type", Name: "type", Width: 10},
		},
		"url",
		Ascending,
	)
	if err != nil {
		return nil, err
	}
	rows := []Row{}
	if data != nil {
		group := data.FindGroup(agent)
		for _, res := range resources {
			u, errParse := url.Parse(res.URL)
			if errParse != nil || !strings.EqualFold(u.Hostname(), initialHost) {
				continue
			}
			if !group.Test(u.RequestURI()) {
				rows = append(rows, Row{"url": res.URL, "type": res.ContentType.String()})
			}
		}
	}
	t.SetData(rows)
	return t, nil
}
