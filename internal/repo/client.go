package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Client is the storage handle shared by every record service. It owns the
// pool; callers borrow one connection per operation through WithConn.
type Client struct {
	drv *entsql.Driver

	logQueries bool
	slow       time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithQueryLog logs every statement at debug level and statements slower than
// threshold at warn level.
func WithQueryLog(threshold time.Duration) Option {
	return func(c *Client) {
		c.logQueries = true
		c.slow = threshold
	}
}

// NewClient wraps an ent SQL driver.
func NewClient(drv *entsql.Driver, opts ...Option) *Client {
	c := &Client{drv: drv}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver exposes the underlying ent driver for schema migration.
func (c *Client) Driver() dialect.Driver {
	return c.drv
}

// Dialect returns the SQL dialect name of the underlying database.
func (c *Client) Dialect() string {
	return c.drv.Dialect()
}

// Close closes the pool.
func (c *Client) Close() error {
	return c.drv.Close()
}

// WithConn checks a dedicated connection out of the pool, hands it to fn and
// returns it to the pool when fn returns, whatever the outcome.
func (c *Client) WithConn(ctx context.Context, fn func(*Conn) error) error {
	conn, err := c.drv.DB().Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(&Conn{conn: conn, client: c})
}

// ---------------------------------------------------------------------------
// Conn
// ---------------------------------------------------------------------------

// Row is the scanning side of *sql.Rows.
type Row interface {
	Scan(dest ...any) error
}

// Conn is a single borrowed connection. Statements run in autocommit mode.
type Conn struct {
	conn   *sql.Conn
	client *Client
}

// Builder returns a query builder for the connection's dialect.
func (c *Conn) Builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.client.Dialect())
}

// Exec runs a statement and returns the number of affected rows.
func (c *Conn) Exec(ctx context.Context, q entsql.Querier) (int64, error) {
	query, args := q.Query()
	defer c.client.logQuery(query, time.Now())

	res, err := c.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Query runs a select and calls scan once per returned row.
func (c *Conn) Query(ctx context.Context, q entsql.Querier, scan func(Row) error) error {
	query, args := q.Query()
	defer c.client.logQuery(query, time.Now())

	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Exists reports whether the selector returns at least one row.
func (c *Conn) Exists(ctx context.Context, sel *entsql.Selector) (bool, error) {
	found := false
	err := c.Query(ctx, sel.Limit(1), func(Row) error {
		found = true
		return nil
	})
	return found, err
}

func (c *Client) logQuery(query string, start time.Time) {
	if !c.logQueries {
		return
	}
	elapsed := time.Since(start)
	if elapsed >= c.slow {
		slog.Warn("slow query", "query", query, "duration", elapsed)
		return
	}
	slog.Debug("query", "query", query, "duration", elapsed)
}
