package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const tokensSchema = `
CREATE TABLE IF NOT EXISTS sendpulse_tokens (
	cache_key  TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore shares cached tokens between hosts through a single table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// PostgresConfig holds connection pool settings
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewPostgresConfig returns pool settings sized for a token cache.
func NewPostgresConfig(dsn string) *PostgresConfig {
	return &PostgresConfig{
		DSN:             dsn,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// NewPostgresStore connects, pings and makes sure the tokens table exists.
func NewPostgresStore(ctx context.Context, cfg *PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, tokensSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("Token database ready",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", cfg.MaxConns))

	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Close closes the database connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Load(ctx context.Context, key string) (string, bool, error) {
	var token string
	err := s.pool.QueryRow(ctx, `SELECT token FROM sendpulse_tokens WHERE cache_key = $1`, key).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load cached token: %w", err)
	}
	return token, token != "", nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, token string) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO sendpulse_tokens (cache_key, token, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (cache_key) DO UPDATE SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at`,
		key, token)
	if err != nil {
		return fmt.Errorf("failed to save cached token: %w", err)
	}

	s.logger.Debug("Saved token to database", zap.String("cache_key", key))
	return nil
}

var _ Store = (*PostgresStore)(nil)
