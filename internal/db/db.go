package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the shared database connection. One handle serves the whole
// process; construct it once in main and pass it to whoever needs it.
type DB struct {
	conn *sql.DB

	ensureOnce sync.Once
	ensureErr  error
}

// Open creates the database connection for the given path. The file is
// created if it does not exist; the schema is applied lazily on first use.
func Open(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY under concurrent callers.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := applyPragmas(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying pragmas: %w", err)
	}

	return &DB{conn: conn}, nil
}

func applyPragmas(conn *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		// Writes must be on disk before Exec returns.
		"PRAGMA synchronous = FULL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Reader returns the connection for read statements, ensuring the schema
// exists first. Safe for concurrent first use.
func (db *DB) Reader() (*sql.DB, error) {
	return db.handle()
}

// Writer returns the connection for write statements. SQLite serializes
// writers itself, so this is the same handle Reader returns.
func (db *DB) Writer() (*sql.DB, error) {
	return db.handle()
}

func (db *DB) handle() (*sql.DB, error) {
	db.ensureOnce.Do(func() {
		db.ensureErr = db.ensureSchema()
	})
	if db.ensureErr != nil {
		return nil, db.ensureErr
	}
	return db.conn, nil
}

// ensureSchema creates the tasks table if this database has never been
// initialized. Existing tables are left untouched.
func (db *DB) ensureSchema() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = 'tasks'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for tasks table: %w", err)
	}

	if count == 0 {
		if _, err := db.conn.Exec(schema); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ListTasks returns all tasks ordered by priority, then age
func (db *DB) ListTasks() ([]Task, error) {
	conn, err := db.Reader()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, description, priority, created_at, updated_at
		FROM tasks
		ORDER BY priority, id
	`

	rows, err := conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		err := rows.Scan(&t.ID, &t.Description, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// GetTask retrieves a single task by ID
func (db *DB) GetTask(id int64) (*Task, error) {
	conn, err := db.Reader()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, description, priority, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	var t Task
	err = conn.QueryRow(query, id).Scan(&t.ID, &t.Description, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// AddTask creates a new task and returns its assigned ID
func (db *DB) AddTask(description string, priority Priority) (int64, error) {
	if !priority.Valid() {
		return 0, fmt.Errorf("invalid priority %d", priority)
	}

	conn, err := db.Writer()
	if err != nil {
		return 0, err
	}

	result, err := conn.Exec(
		`INSERT INTO tasks (description, priority) VALUES (?, ?)`,
		description, priority,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert ID: %w", err)
	}

	return id, nil
}
