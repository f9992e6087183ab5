// Package sqlite provides a SQLite-backed findings store.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lexframe-labs/lexframe-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
	"github.com/lexframe-labs/lexframe-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FindingsStore = (*Store)(nil)

// Store persists pipeline runs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite findings store at the specified data directory.
// If dataDir is empty, defaults to ~/.lexframe/data/findings.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lexframe", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "findings.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveRun stores a run and its per-module results in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *domain.RunResult) error {
	modules, err := json.Marshal(run.Modules)
	if err != nil {
		return fmt.Errorf("marshaling module list: %w", err)
	}

	fp := run.Fingerprint
	if fp == nil {
		fp = &domain.Fingerprint{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, corpus_name, profile, modules, checksum, byte_size, char_count, source_path, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CorpusName, run.Profile, string(modules),
		fp.Checksum, fp.ByteSize, fp.CharCount, fp.SourcePath,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM module_results WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing module results: %w", err)
	}

	for _, name := range run.Modules {
		res := run.Results[name]
		if res == nil {
			continue
		}

		var output sql.NullString
		if res.Output != nil {
			data, err := json.Marshal(res.Output)
			if err != nil {
				return fmt.Errorf("marshaling output for %s: %w", name, err)
			}
			output = sql.NullString{String: string(data), Valid: true}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO module_results (run_id, module_name, status, error_kind, error_message, output)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, res.ModuleName, string(res.Status), res.ErrorKind, res.ErrorMessage, output,
		)
		if err != nil {
			return fmt.Errorf("inserting result for %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, corpus_name, profile, modules, checksum, byte_size, char_count, source_path, started_at, finished_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadResults(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*domain.RunResult, error) {
	query := `
		SELECT id, corpus_name, profile, modules, checksum, byte_size, char_count, source_path, started_at, finished_at
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.RunResult
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		if err := s.loadResults(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) loadResults(ctx context.Context, run *domain.RunResult) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module_name, status, error_kind, error_message, output
		FROM module_results WHERE run_id = ?`, run.ID)
	if err != nil {
		return fmt.Errorf("querying module results: %w", err)
	}
	defer rows.Close()

	run.Results = make(map[string]*domain.ModuleResult)
	for rows.Next() {
		var res domain.ModuleResult
		var status string
		var output sql.NullString
		if err := rows.Scan(&res.ModuleName, &status, &res.ErrorKind, &res.ErrorMessage, &output); err != nil {
			return fmt.Errorf("scanning module result: %w", err)
		}
		res.Status = domain.ModuleStatus(status)
		if output.Valid {
			var out domain.AnalysisOutput
			if err := json.Unmarshal([]byte(output.String), &out); err != nil {
				return fmt.Errorf("unmarshaling output for %s: %w", res.ModuleName, err)
			}
			res.Output = &out
		}
		run.Results[res.ModuleName] = &res
	}
	return rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*domain.RunResult, error) {
	var run domain.RunResult
	var modules, startedAt, finishedAt string
	var fp domain.Fingerprint

	err := sc.Scan(&run.ID, &run.CorpusName, &run.Profile, &modules,
		&fp.Checksum, &fp.ByteSize, &fp.CharCount, &fp.SourcePath,
		&startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(modules), &run.Modules); err != nil {
		return nil, fmt.Errorf("unmarshaling module list: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	if fp.Checksum != "" {
		run.Fingerprint = &fp
	}
	return &run, nil
}
