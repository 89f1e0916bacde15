package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rickshaw-booking/internal/config"
	"rickshaw-booking/internal/mylogger"
)

type DB struct {
	ctx   context.Context
	cfg   *config.DBconfig
	mylog mylogger.Logger
	pool  *pgxpool.Pool
}

// New initializes and returns a DB instance backed by a connection pool,
// so concurrent handlers never contend for a single connection.
func New(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Database,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return &DB{
		ctx:   ctx,
		cfg:   dbCfg,
		mylog: mylog,
		pool:  pool,
	}, nil
}

// Close releases every pooled connection
func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

// IsAlive pings the DB
func (d *DB) IsAlive() error {
	if d.pool == nil {
		return fmt.Errorf("DB is not initialized")
	}
	return d.pool.Ping(d.ctx)
}
