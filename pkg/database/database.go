package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type Config struct {
	Driver          string `split_words:"true" default:"sqlite"`
	DSN             string `envconfig:"DATABASE_DSN" default:"file:bookseller.db?_pragma=busy_timeout(5000)"`
	MaxOpenConns    int    `split_words:"true" default:"10"`
	MaxIdleConns    int    `split_words:"true" default:"5"`
	ConnMaxLifetime int    `split_words:"true" default:"300"`
}

// New opens the pool and verifies it with a ping.
func (c *Config) New(ctx context.Context) (*sqlx.DB, error) {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	db, err := sqlx.Open(c.Driver, c.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Driver, err)
	}

	maxOpen := c.MaxOpenConns
	if c.Driver == DriverSQLite {
		// single writer; extra connections only produce SQLITE_BUSY
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", c.Driver, err)
	}
	return db, nil
}

func (c *Config) MustNew(ctx context.Context) *sqlx.DB {
	db, err := c.New(ctx)
	if err != nil {
		panic(err)
	}
	return db
}
