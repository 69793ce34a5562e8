package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Import postgres driver
	_ "github.com/lib/pq"
	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds every collection operation. It runs either on the pool or inside a transaction.
type Queries struct {
	q       querier
	dialect dialect
}

// DB wraps a sql.DB connection.
type DB struct {
	*Queries
	conn *sql.DB
}

// NewDB opens a SQLite database at path and runs migrations.
func NewDB(path string) (*DB, error) {
	return Open(DriverSQLite, path)
}

// Open opens a database for the given driver and runs migrations.
func Open(driver, dsn string) (*DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// a second connection to :memory: would see an empty database
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{Queries: &Queries{q: conn, dialect: d}, conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	for _, m := range db.dialect.migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Driver returns the name of the underlying driver.
func (db *DB) Driver() string {
	return db.dialect.name
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&Queries{q: tx, dialect: db.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.q.ExecContext(ctx, q.dialect.rebind(query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.q.QueryContext(ctx, q.dialect.rebind(query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.q.QueryRowContext(ctx, q.dialect.rebind(query), args...)
}

// affected reports whether res changed at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

type dialect struct {
	name       string
	migrations []string
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func (d dialect) rebind(query string) string {
	if d.name != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

var dialects = map[string]dialect{
	DriverSQLite:   {name: DriverSQLite, migrations: schema("INTEGER", "REAL")},
	DriverPostgres: {name: DriverPostgres, migrations: schema("BIGINT", "DOUBLE PRECISION")},
}

// schema renders the migrations with the driver's integer and float column types.
func schema(bigint, float string) []string {
	r := strings.NewReplacer("{bigint}", bigint, "{float}", float)
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			device_token TEXT NOT NULL DEFAULT '',
			created_at {bigint} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at {bigint} NOT NULL,
			last_activity {bigint} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			amount {float} NOT NULL,
			date TEXT NOT NULL,
			category TEXT NOT NULL,
			attachments TEXT NOT NULL DEFAULT '[]',
			created_at {bigint} NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS expenses_user_date ON expenses (user_id, date)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			month TEXT NOT NULL,
			year INTEGER NOT NULL,
			total {float} NOT NULL,
			used {float} NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS budgets_user_month ON budgets (user_id, year, month)`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			time_of_day TEXT NOT NULL,
			repeat_label TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT 'UTC',
			created_at {bigint} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at {bigint} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			reminder_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			fire_at {bigint} NOT NULL,
			status TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT NOT NULL DEFAULT '',
			created_at {bigint} NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS jobs_status_fire_at ON jobs (status, fire_at)`,
	}
	for i := range migrations {
		migrations[i] = r.Replace(migrations[i])
	}
	return migrations
}
