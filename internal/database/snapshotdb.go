package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/problemreg/internal/model"
)

// dbFileName is the name of the SQLite file inside the database directory.
const dbFileName = "problemreg.db"

// ErrAmbiguousID is returned when a snapshot id prefix matches several snapshots.
var ErrAmbiguousID = errors.New("snapshot id prefix is ambiguous")

// SnapshotDB provides SQLite-based storage for export snapshots.
type SnapshotDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SnapshotDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SnapshotDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SnapshotDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run an export with --save first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SnapshotDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Path returns the path of the database file.
func (sdb *SnapshotDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SnapshotDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SnapshotDB) createTables() error {
	schema := `
	-- One row per export
	CREATE TABLE IF NOT EXISTS snapshots (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		total INTEGER NOT NULL,
		catalog_digest TEXT NOT NULL,
		by_task TEXT NOT NULL,
		by_app TEXT NOT NULL,
		problem_ids TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);

	-- Files written by an export
	CREATE TABLE IF NOT EXISTS snapshot_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		format TEXT NOT NULL,
		path TEXT NOT NULL,
		bytes INTEGER NOT NULL,
		digest TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_files_snapshot ON snapshot_files(snapshot_id);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// FileRecord describes one file written by an export.
type FileRecord struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
	Digest string `json:"digest"`
}

// Snapshot is the stored state of the catalog at one export.
type Snapshot struct {
	// ID is a random UUID assigned on save.
	ID string `json:"id"`

	// CreatedAt is when the export ran, in UTC.
	CreatedAt time.Time `json:"created_at"`

	// Total is the number of problems.
	Total int `json:"total"`

	// CatalogDigest identifies the catalog content.
	CatalogDigest string `json:"catalog_digest"`

	// ByTask and ByApp are the tallies of the export summary.
	ByTask model.Counts `json:"by_task"`
	ByApp  model.Counts `json:"by_app"`

	// ProblemIDs lists every problem id in declaration order.
	ProblemIDs []string `json:"problem_ids"`

	// Files lists the files written.
	Files []FileRecord `json:"files,omitempty"`
}

// NewSnapshot builds a snapshot from an export summary.
// The ID and CreatedAt are assigned by SaveSnapshot.
func NewSnapshot(summary model.Summary, problemIDs []string, catalogDigest string, files []FileRecord) *Snapshot {
	return &Snapshot{
		Total:         summary.Total,
		CatalogDigest: catalogDigest,
		ByTask:        summary.ByTask,
		ByApp:         summary.ByApp,
		ProblemIDs:    problemIDs,
		Files:         files,
	}
}

// SaveSnapshot stores a snapshot and its files in a single transaction.
// An empty ID is replaced with a new UUID and a zero CreatedAt with the
// current time.
func (sdb *SnapshotDB) SaveSnapshot(ctx context.Context, s *Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	byTask, err := json.Marshal(s.ByTask)
	if err != nil {
		return fmt.Errorf("failed to serialize task counts: %w", err)
	}
	byApp, err := json.Marshal(s.ByApp)
	if err != nil {
		return fmt.Errorf("failed to serialize app counts: %w", err)
	}
	ids, err := json.Marshal(s.ProblemIDs)
	if err != nil {
		return fmt.Errorf("failed to serialize problem ids: %w", err)
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // No-op after commit
	}()

	query := `
	INSERT INTO snapshots (id, created_at, total, catalog_digest, by_task, by_app, problem_ids)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		s.ID,
		s.CreatedAt.UTC().Format(time.RFC3339Nano),
		s.Total,
		s.CatalogDigest,
		string(byTask),
		string(byApp),
		string(ids),
	); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	for _, f := range s.Files {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_files (snapshot_id, format, path, bytes, digest)
		VALUES (?, ?, ?, ?, ?)
		`, s.ID, f.Format, f.Path, f.Bytes, f.Digest); err != nil {
			return fmt.Errorf("failed to save snapshot file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// SnapshotMetadata contains summary information about a snapshot.
// This is used for listing history without loading problem ids.
type SnapshotMetadata struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Total         int       `json:"total"`
	CatalogDigest string    `json:"catalog_digest"`
}

// ListSnapshots returns snapshot metadata, newest first.
// A limit of zero or less returns every snapshot.
func (sdb *SnapshotDB) ListSnapshots(ctx context.Context, limit int) ([]SnapshotMetadata, error) {
	query := `
	SELECT id, created_at, total, catalog_digest
	FROM snapshots
	ORDER BY seq DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var results []SnapshotMetadata
	for rows.Next() {
		var meta SnapshotMetadata
		var timestamp string

		if err := rows.Scan(&meta.ID, &timestamp, &meta.Total, &meta.CatalogDigest); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		meta.CreatedAt = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetSnapshot retrieves a snapshot by its id or a unique prefix of it.
// It returns nil without error when nothing matches and ErrAmbiguousID
// when the prefix matches more than one snapshot.
func (sdb *SnapshotDB) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	if id == "" {
		return nil, nil
	}

	query := `
	SELECT id, created_at, total, catalog_digest, by_task, by_app, problem_ids
	FROM snapshots
	WHERE substr(id, 1, ?) = ?
	ORDER BY seq DESC
	LIMIT 2
	`
	snapshots, err := sdb.querySnapshots(ctx, query, len(id), id)
	if err != nil {
		return nil, err
	}

	switch {
	case len(snapshots) == 0:
		return nil, nil
	case len(snapshots) > 1 && snapshots[0].ID != id && snapshots[1].ID != id:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	case len(snapshots) > 1 && snapshots[1].ID == id:
		return snapshots[1], nil
	default:
		return snapshots[0], nil
	}
}

// LatestSnapshots returns up to n snapshots with their files, newest first.
func (sdb *SnapshotDB) LatestSnapshots(ctx context.Context, n int) ([]*Snapshot, error) {
	query := `
	SELECT id, created_at, total, catalog_digest, by_task, by_app, problem_ids
	FROM snapshots
	ORDER BY seq DESC
	LIMIT ?
	`
	return sdb.querySnapshots(ctx, query, n)
}

// querySnapshots runs a snapshot query and loads the files of each result.
func (sdb *SnapshotDB) querySnapshots(ctx context.Context, query string, args ...any) ([]*Snapshot, error) {
	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		var s Snapshot
		var timestamp, byTask, byApp, ids string

		if err := rows.Scan(&s.ID, &timestamp, &s.Total, &s.CatalogDigest, &byTask, &byApp, &ids); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.CreatedAt = parseTimestamp(timestamp)

		if err := json.Unmarshal([]byte(byTask), &s.ByTask); err != nil {
			return nil, fmt.Errorf("failed to parse task counts of %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(byApp), &s.ByApp); err != nil {
			return nil, fmt.Errorf("failed to parse app counts of %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(ids), &s.ProblemIDs); err != nil {
			return nil, fmt.Errorf("failed to parse problem ids of %s: %w", s.ID, err)
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Close before issuing the file queries; the pool holds one connection.
	_ = rows.Close()

	for _, s := range snapshots {
		files, err := sdb.snapshotFiles(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Files = files
	}

	return snapshots, nil
}

// snapshotFiles returns the files of a snapshot in insertion order.
func (sdb *SnapshotDB) snapshotFiles(ctx context.Context, snapshotID string) ([]FileRecord, error) {
	rows, err := sdb.db.QueryContext(ctx, `
	SELECT format, path, bytes, digest
	FROM snapshot_files
	WHERE snapshot_id = ?
	ORDER BY id
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Format, &f.Path, &f.Bytes, &f.Digest); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // Format written by SaveSnapshot
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
