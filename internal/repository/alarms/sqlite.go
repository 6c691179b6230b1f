package alarms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	// Registers the "sqlite3" database/sql driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// sqliteOptions are appended to the database path.
const sqliteOptions = "?_busy_timeout=5000&_journal_mode=WAL"

// SQLiteRepository persists the snapshot in a SQLite database.
type SQLiteRepository struct {
	// db is the open database handle.
	db *sql.DB
	// path is the database file location.
	path string
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	path = filepath.Clean(path)

	db, err := sql.Open("sqlite3", path+sqliteOptions)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	for _, q := range initQueries {
		if _, err = db.Exec(q); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("initialise schema: %w", err)
		}
	}

	return &SQLiteRepository{
		db:   db,
		path: path,
	}, nil
}

// Load reads the credential and the alarms.
func (r *SQLiteRepository) Load(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot

	err := r.db.QueryRowContext(ctx, dbQueries[queryCredentialGet]).Scan(&snapshot.Credential)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("query credential: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, dbQueries[queryAlarmGetAll])
	if err != nil {
		return nil, fmt.Errorf("query alarms: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			a        alarm.Alarm
			lastDate string
			kind     string
		)

		if err = rows.Scan(
			&a.ID,
			&a.Name,
			&a.TargetHours,
			&a.TargetMinutes,
			&a.Enabled,
			&a.HasTriggered,
			&lastDate,
			&kind,
		); err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}

		a.LastTriggeredDate = alarm.Date(lastDate)
		a.Kind = alarm.Kind(kind)

		snapshot.Alarms = append(snapshot.Alarms, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alarms: %w", err)
	}

	return &snapshot, nil
}

// Save replaces the stored credential and alarms in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, snapshot *Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, dbQueries[queryCredentialSet], snapshot.Credential); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	if _, err = tx.ExecContext(ctx, dbQueries[queryAlarmDeleteAll]); err != nil {
		return fmt.Errorf("delete alarms: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, dbQueries[queryAlarmAdd])
	if err != nil {
		return fmt.Errorf("prepare alarm insert: %w", err)
	}

	defer func() {
		_ = stmt.Close()
	}()

	for i := range snapshot.Alarms {
		a := &snapshot.Alarms[i]

		if _, err = stmt.ExecContext(
			ctx,
			i,
			a.ID,
			a.Name,
			a.TargetHours,
			a.TargetMinutes,
			a.Enabled,
			a.HasTriggered,
			string(a.LastTriggeredDate),
			string(a.Kind),
		); err != nil {
			return fmt.Errorf("insert alarm %s: %w", a.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
