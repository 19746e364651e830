package db

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migration is one versioned SQL file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationStatus reports whether a migration has reached a clinic schema.
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Migrator applies the SQL files of a filesystem, usually the embedded
// migrations package, to a clinic schema. Applied versions are recorded in
// the schema's own _migrations table.
type Migrator struct {
	pool  *pgxpool.Pool
	files fs.FS
}

func NewMigrator(pool *pgxpool.Pool, files fs.FS) *Migrator {
	return &Migrator{pool: pool, files: files}
}

var migrationName = regexp.MustCompile(`^(\d+)_.+\.sql$`)

// LoadMigrations returns the top-level "<version>_<name>.sql" files in
// version order. Anything else in the filesystem is ignored.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	var out []Migration
	for _, name := range names {
		match := migrationName.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		version, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		body, err := fs.ReadFile(m.files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return out, nil
}

// Up applies every pending migration to schema, each in its own
// transaction, and returns how many ran. A failure stops the run; the
// migrations before it stay applied.
func (m *Migrator) Up(ctx context.Context, schema string) (int, error) {
	pending, applied, err := m.load(ctx, schema)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range pending {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		if err := m.apply(ctx, schema, mig); err != nil {
			return count, fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}
		zerolog.Ctx(ctx).Info().Str("schema", schema).Int("version", mig.Version).Msg("migration applied")
		count++
	}
	return count, nil
}

// Status lists every known migration and whether schema has it.
func (m *Migrator) Status(ctx context.Context, schema string) ([]MigrationStatus, error) {
	all, applied, err := m.load(ctx, schema)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(all))
	for _, mig := range all {
		st := MigrationStatus{Version: mig.Version, Name: mig.Name}
		if at, ok := applied[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// load reads the migration files and the versions already recorded in
// schema, creating the tracking table on first use.
func (m *Migrator) load(ctx context.Context, schema string) ([]Migration, map[int]time.Time, error) {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s._migrations (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, schema)
	if _, err := m.pool.Exec(ctx, ddl); err != nil {
		return nil, nil, fmt.Errorf("create %s._migrations: %w", schema, err)
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return nil, nil, err
	}

	rows, err := m.pool.Query(ctx, fmt.Sprintf(`SELECT version, applied_at FROM %s._migrations`, schema))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s._migrations: %w", schema, err)
	}
	type record struct {
		Version   int
		AppliedAt time.Time
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[record])
	if err != nil {
		return nil, nil, fmt.Errorf("read %s._migrations: %w", schema, err)
	}

	applied := make(map[int]time.Time, len(records))
	for _, r := range records {
		applied[r.Version] = r.AppliedAt
	}
	return all, applied, nil
}

// apply runs one migration with schema first on the search path and records
// it in the same transaction.
func (m *Migrator) apply(ctx context.Context, schema string, mig Migration) error {
	return pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", schema)); err != nil {
			return fmt.Errorf("set search_path: %w", err)
		}
		if _, err := tx.Exec(ctx, mig.SQL); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO _migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
		return err
	})
}
