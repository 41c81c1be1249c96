package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carsearch/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the search_logs table when it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS search_logs (
			id BIGSERIAL PRIMARY KEY,
			criteria JSONB NOT NULL,
			result_count INT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			response_time_ms INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// LogSearch records one executed search with its outcome.
func (r *PostgresRepository) LogSearch(ctx context.Context, criteriaJSON string, resultCount int, reason string, responseTimeMs int) error {
	query := `
		INSERT INTO search_logs (criteria, result_count, reason, response_time_ms)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, criteriaJSON, resultCount, reason, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// RecentSearches returns the most recent logged searches, newest first.
func (r *PostgresRepository) RecentSearches(ctx context.Context, limit int) ([]model.SearchLog, error) {
	query := `
		SELECT id, criteria::text AS criteria, result_count, reason, response_time_ms, created_at
		FROM search_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	var logs []model.SearchLog
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent searches: %w", err)
	}
	return logs, nil
}
