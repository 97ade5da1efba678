// Package resale serves HDB resale transactions and current listings.
//
// Service exposes one method per read the map front end performs: single
// documents by id, filtered searches, the average price per month, the most
// recent transaction per postal code and the distinct towns and flat types
// used to populate the filter controls. Every filtered read is compiled by
// the filters package against the schema of its collection and executed on
// a recordsource.Source, so the same Service runs on MongoDB, PostgreSQL or
// the in-memory store.
//
// Request is the wire shape sent by the front end:
//
//	{"town": ["BISHAN"], "minPsf": 400, "maxPsf": 600, "limit": 300}
//
// It converts to a filters.FilterSpec keyed by the logical names of
// RecordsSchema and ListingsSchema (towns, psfRange, latRange).
package resale
