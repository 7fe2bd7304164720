package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Attempt is one recorded login or registration call. Passwords and tokens
// are never stored.
type Attempt struct {
	ID        int64
	AttemptID string
	Op        string
	Email     string
	Username  string
	Success   bool
	Status    int
	Message   string
	StartedAt time.Time
	Duration  time.Duration
}

// Journal stores attempts in a local sqlite database.
type Journal struct {
	dbFile string
	conn   *sql.DB
}

func NewJournal(dbFile string) *Journal {
	return &Journal{dbFile: dbFile}
}

func (j *Journal) Connect() error {
	if dir := filepath.Dir(j.dbFile); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", j.dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to journal: %w", err)
	}
	// sqlite allows one writer; concurrent submissions queue on this connection.
	conn.SetMaxOpenConns(1)
	j.conn = conn

	if err := j.initDatabase(); err != nil {
		conn.Close()
		return err
	}

	if err := j.checkAndUpdateSchema(); err != nil {
		conn.Close()
		return err
	}

	return nil
}

func (j *Journal) initDatabase() error {
	query := `
    CREATE TABLE IF NOT EXISTS attempts (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        attempt_id TEXT NOT NULL,
        op TEXT NOT NULL,
        email TEXT NOT NULL,
        success INTEGER NOT NULL,
        status INTEGER DEFAULT 0,
        message TEXT,
        started_at TEXT NOT NULL,
        duration_ms INTEGER DEFAULT 0
    )`
	if _, err := j.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	return nil
}

// checkAndUpdateSchema adds columns introduced after the first release.
func (j *Journal) checkAndUpdateSchema() error {
	rows, err := j.conn.Query("PRAGMA table_info(attempts)")
	if err != nil {
		return fmt.Errorf("failed to fetch table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("failed to scan table info: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read table info: %w", err)
	}

	if !columns["username"] {
		_, err := j.conn.Exec(`
        ALTER TABLE attempts
        ADD COLUMN username TEXT DEFAULT ''
        `)
		if err != nil {
			return fmt.Errorf("failed to add username column: %w", err)
		}
	}

	return nil
}

func (j *Journal) SaveAttempt(ctx context.Context, a Attempt) error {
	query := `
    INSERT INTO attempts (attempt_id, op, email, username, success, status, message, started_at, duration_ms)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := j.conn.ExecContext(ctx, query,
		a.AttemptID, a.Op, a.Email, a.Username, a.Success, a.Status, a.Message,
		a.StartedAt.UTC().Format(time.RFC3339Nano), a.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns up to limit attempts, newest first.
func (j *Journal) RecentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	query := `
    SELECT id, attempt_id, op, email, username, success, status, message, started_at, duration_ms
    FROM attempts ORDER BY id DESC LIMIT ?`
	rows, err := j.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var username, message sql.NullString
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.Op, &a.Email, &username, &a.Success, &a.Status, &message, &startedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.Username = username.String
		a.Message = message.String
		a.Duration = time.Duration(durationMs) * time.Millisecond
		if a.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse attempt time %q: %w", startedAt, err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

func (j *Journal) ClearAttempts(ctx context.Context) error {
	if _, err := j.conn.ExecContext(ctx, "DELETE FROM attempts"); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	if j.conn == nil {
		return nil
	}
	return j.conn.Close()
}
