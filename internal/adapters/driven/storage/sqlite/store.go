package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/grimoire/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SnapshotWriter = (*Store)(nil)

// Store is a SQLite catalog snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the snapshot database at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the foreign_keys pragma in effect for every statement.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("Applied snapshot migration %s", name)
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// WriteSnapshot replaces the exported records with records and stores the
// load report alongside them.
func (s *Store) WriteSnapshot(ctx context.Context, report domain.LoadReport, records []domain.Record) error {
	if report.LoadID == "" {
		report.LoadID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO loads (load_id, started_at, finished_at, documents, records)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(load_id) DO UPDATE SET exported_at = CURRENT_TIMESTAMP
	`, report.LoadID, nullTime(report.StartedAt), nullTime(report.FinishedAt),
		len(report.Documents), len(records)); err != nil {
		return fmt.Errorf("saving load: %w", err)
	}

	if err := insertRecords(ctx, tx, report.LoadID, records); err != nil {
		return err
	}
	if err := insertDiagnostics(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	logger.Info("Exported %d record(s) to %s", len(records), s.path)
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, loadID string, records []domain.Record) error {
	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, load_id, name, main_type, sub_type, category, level,
			source, description, document, path, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing records: %w", err)
	}
	defer recStmt.Close()

	traitStmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO record_traits (record_id, trait) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing traits: %w", err)
	}
	defer traitStmt.Close()

	for i := range records {
		r := &records[i]
		attrs := oj.JSON(r.Attributes(), &ojg.Options{Sort: true})
		if _, err := recStmt.ExecContext(ctx, r.ID, loadID, r.Name, string(r.MainType), r.SubType,
			r.Category, r.Level, r.Source, r.Description, r.Origin.Document, r.Origin.Path, attrs); err != nil {
			return fmt.Errorf("saving record %s: %w", r.ID, err)
		}
		for _, t := range r.Traits {
			if _, err := traitStmt.ExecContext(ctx, r.ID, t); err != nil {
				return fmt.Errorf("saving trait %q of %s: %w", t, r.ID, err)
			}
		}
	}
	return nil
}

func insertDiagnostics(ctx context.Context, tx *sql.Tx, report domain.LoadReport) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM diagnostics WHERE load_id = ?", report.LoadID); err != nil {
		return fmt.Errorf("clearing diagnostics: %w", err)
	}
	for _, d := range report.Diagnostics {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO diagnostics (load_id, kind, document, path, key, message)
			VALUES (?, ?, ?, ?, ?, ?)
		`, report.LoadID, string(d.Kind), d.Document, d.Path, d.Key, d.Message); err != nil {
			return fmt.Errorf("saving diagnostic: %w", err)
		}
	}
	return nil
}

// CountRecords returns the number of exported records, optionally within
// a main type.
func (s *Store) CountRecords(ctx context.Context, mt domain.MainType) (int, error) {
	q, args := "SELECT COUNT(*) FROM records", []any{}
	if mt != "" {
		q += " WHERE main_type = ?"
		args = append(args, string(mt))
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// RecordsWithTrait returns the names of exported records carrying trait,
// ordered by name.
func (s *Store) RecordsWithTrait(ctx context.Context, trait string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.name FROM records r
		JOIN record_traits t ON t.record_id = r.id
		WHERE t.trait = ?
		ORDER BY r.name COLLATE NOCASE
	`, trait)
	if err != nil {
		return nil, fmt.Errorf("querying traits: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Attributes returns the stored attribute JSON of one record.
func (s *Store) Attributes(ctx context.Context, id string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT attributes FROM records WHERE id = ?", id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	v, err := oj.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding attributes: %w", err)
	}
	attrs, _ := v.(map[string]any)
	return attrs, nil
}

// Loads returns the exported load IDs, oldest first.
func (s *Store) Loads(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT load_id FROM loads ORDER BY exported_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("querying loads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
