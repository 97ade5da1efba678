package postgres

import (
	"context"
	"fmt"
	"sort"
)

// Migrate creates or updates one table per entry of tables, using the
// entry's model for the column layout.
func (p *Postgres) Migrate(ctx context.Context, tables map[string]interface{}) error {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := p.DB().WithContext(ctx).Table(name).AutoMigrate(tables[name]); err != nil {
			return fmt.Errorf("migrate %q: %w", name, TranslateError(err))
		}
		p.logger.Info("Migrated table", nil, map[string]interface{}{"table": name})
	}
	return nil
}
