// Package postgres implements recordsource.Source on PostgreSQL via GORM.
//
// Each collection is a table whose columns carry the document field names
// verbatim (quoted, so "Psf" and "flat_type" keep their case). Compiled
// filters become GORM clause expressions:
//
//	Equality   -> "town" = $1
//	Membership -> "flat_type" IN ($1, $2)
//	Comparison -> "Psf" >= $1 AND "Psf" <= $2
//
// Pipelines become a single SELECT: a leading limit is a subquery, match
// stages are WHERE conditions, an avg/sum/min/max/count group is a GROUP BY
// on the key, and a first-document group is SELECT DISTINCT ON (key) ordered
// by the key and the pre-group sort. Sorts after the group wrap the grouped
// query.
//
// Postgres keeps the connection healthy in the background: MonitorConnection
// pings the database every HealthCheckInterval and signals RetryConnection,
// which reconnects and swaps the client atomically. Both loops are started by
// FXModule and stopped on shutdown.
//
// Direct usage:
//
//	pg, err := postgres.NewPostgres(postgres.DefaultConfig(), log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//	source := postgres.NewAdapter(pg)
package postgres
