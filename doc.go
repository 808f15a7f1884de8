// Package pnaes provides the data-loading and aggregation core of the PNAES
// public-health analytics service: typed loaders over pre-aggregated SUS
// ambulatory, Censo 2022 population, municipal GDP, and municipality
// reference tables, plus descriptive aggregation of the ambulatory table.
//
// # Key Components
//
//   - DashboardService: read-side facade combining a DatasetRepo and an
//     optional SchemaIntrospector
//   - DatasetRepo: interface for the four dataset loaders (PostgreSQL,
//     SQLite)
//   - SummarizeByRegion / SummarizeByState / SummarizeByYear: pure
//     aggregation of the ambulatory table with guarded per-municipality
//     ratios
//   - WriteAmbulatoryCSV / ReadAmbulatoryCSV: the raw-table export format
//     consumed by the dashboard frontend
//
// # Example Usage
//
//	store, cleanup, err := database.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
//
//	service, err := pnaes.NewDashboardService(store, store, cfg.Tables)
//
//	regions, err := service.RegionSummaries(ctx)
//
// See the http package for the REST API, the database package for backend
// connection handling, and the cache package for load memoization.
package pnaes
