package main

import (
	"github.com/foomo/exporter/reports"
	"github.com/foomo/exporter/store"
	"github.com/temoto/robotstxt"
)

func analyze(
	registry *reports.Registry,
	resources *store.MemoryStore,
	robots *robotstxt.RobotsData,
	initialHost string,
	opts *options,
) error {
	all := resources.All()
	tables := []func() (*reports.SuperTable, error){
		func() (*reports.SuperTable, error) { return reports.AnalyzeStatusCodes(all) },
		func() (*reports.SuperTable, error) { return reports.AnalyzePerformance(all) },
		func() (*reports.SuperTable, error) { return reports.AnalyzeBrokenLinks(all, resources) },
		func() (*reports.SuperTable, error) { return reports.AnalyzeErrors(all) },
		func() (*reports.SuperTable, error) { return reports.AnalyzeSlowest(all, opts.Slowest) },
		func() (*reports.SuperTable, error) {
			return reports.AnalyzeRobots(all, robots, initialHost, opts.UserAgent)
		},
	}
	for _, table := range tables {
		t, err := table()
		if err != nil {
			return err
		}
		registry.AddTable(t)
	}
	return nil
}
