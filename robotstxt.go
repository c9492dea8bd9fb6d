package exporter

import (
	"errors"
	"net/url"

	"github.com/temoto/robotstxt"
)

var ErrNoRobotsTxt = errors.New("robots.txt was not visited")

// RobotsData parses the robots.txt of the initial host from the crawl
func RobotsData(store ResourceStore, initialURL *url.URL) (data *robotstxt.RobotsData, err error) {
	robotsURL := (&url.URL{Scheme: initialURL.Scheme, Host: initialURL.Host, Path: "/" + robotsTxt}).String()
	for _, res := range store.All() {
		if res.URL != robotsURL {
			continue
		}
		body, ok := store.Body(res.UqID)
		if !ok {
			return nil, ErrNoBody
		}
		return robotstxt.FromStatusAndBytes(res.StatusCode, []byte(body))
	}
	return nil, ErrNoRobotsTxt
}
