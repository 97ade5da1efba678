// Package backend chooses the recordsource.Source an application runs on.
//
// Module returns the fx option for the configured kind: the MongoDB adapter,
// the PostgreSQL adapter, or an in-memory store seeded from JSON files. Each
// option provides recordsource.Source and, for the database kinds, an
// httpapi.HealthChecker probing the connection.
package backend
