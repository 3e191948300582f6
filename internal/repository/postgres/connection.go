package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/juansean527/persona-service/database"
)

// Connection holds the pgx pool used for row-level access and a database/sql
// handle on the lib/pq driver used for migrations, COPY and reports.
type Connection struct {
	*pgxpool.Pool
	SQL *sql.DB
}

// Options tune a new Connection.
type Options struct {
	MaxConns int32
	// SkipMigrations leaves the schema untouched.
	SkipMigrations bool
}

func NewConnection(ctx context.Context, dsn string, opts Options) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		conf.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open sql connection: %w", err)
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(int(opts.MaxConns))
	}

	conn := &Connection{Pool: pool, SQL: db}

	if !opts.SkipMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return conn, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQL != nil {
		return s.SQL.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return errors.New("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}
