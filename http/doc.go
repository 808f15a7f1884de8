// Package http implements the REST API of the PNAES dashboard service.
//
// The API is read only. It exposes the four raw dataset tables, the three
// aggregate tables (by region, by state, by production year), schema
// diagnostics, and a CSV export of the raw ambulatory table under /api/v1.
// Errors are returned as JSON {error, message} bodies; an unreachable
// database maps to 503.
package http
