package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cryptonews/internal/domain"
)

// PostgresStore persists news records. The news_items table carries a
// unique index on (source, url); duplicate records are skipped
// silently on insert.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// SaveItems bulk-inserts records, skipping (source, url) duplicates.
// Returns how many rows were actually inserted.
func (s *PostgresStore) SaveItems(ctx context.Context, records []domain.NewsRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO news_items
			   (source, url, title, description, published_at, fetched_at,
			    category, author, content_type, full_content, preview_content)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (source, url) DO NOTHING`,
			rec.Source, rec.URL, rec.Title, rec.Description,
			rec.PublishedAt, rec.FetchedAt, rec.Category, rec.Author,
			rec.ContentType, rec.FullContent, rec.PreviewContent,
		)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range records {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	return inserted, tx.Commit(ctx)
}

const selectColumns = `source, url, title, description, published_at, fetched_at,
       category, author, content_type, full_content, preview_content`

// GetRecentItems returns the newest records by published_at.
func (s *PostgresStore) GetRecentItems(ctx context.Context, limit int) ([]domain.NewsRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM news_items ORDER BY published_at DESC LIMIT $1`,
		clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// GetItemsBySource returns the newest records for one site.
func (s *PostgresStore) GetItemsBySource(ctx context.Context, source string, limit int) ([]domain.NewsRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM news_items WHERE source = $1 ORDER BY published_at DESC LIMIT $2`,
		source, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// GetItemsByDateRange returns records published within [start, end].
func (s *PostgresStore) GetItemsByDateRange(ctx context.Context, start, end time.Time, limit int) ([]domain.NewsRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM news_items
		 WHERE published_at BETWEEN $1 AND $2 ORDER BY published_at DESC LIMIT $3`,
		start, end, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]domain.NewsRecord, error) {
	defer rows.Close()
	var records []domain.NewsRecord
	for rows.Next() {
		var rec domain.NewsRecord
		if err := rows.Scan(
			&rec.Source, &rec.URL, &rec.Title, &rec.Description,
			&rec.PublishedAt, &rec.FetchedAt, &rec.Category, &rec.Author,
			&rec.ContentType, &rec.FullContent, &rec.PreviewContent,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}
