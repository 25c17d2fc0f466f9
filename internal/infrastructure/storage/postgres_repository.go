package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

// PostgresRepository records completed analyses for the history surface.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAnalysis appends one analysis snapshot.
func (r *PostgresRepository) SaveAnalysis(ctx context.Context, record domain.AnalysisRecord) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("analysis_history").
		Columns("text_excerpt", "score", "verdict").
		Values(record.TextExcerpt, record.Score, string(record.Verdict)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return nil
}

// RecentAnalyses returns up to limit snapshots, newest first.
func (r *PostgresRepository) RecentAnalyses(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	if r.db == nil {
		return []domain.AnalysisRecord{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query, args, err := r.builder.
		Select("id", "text_excerpt", "score", "verdict", "created_at").
		From("analysis_history").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	records := make([]domain.AnalysisRecord, 0, limit)
	for rows.Next() {
		var rec domain.AnalysisRecord
		var verdict string
		if err := rows.Scan(&rec.ID, &rec.TextExcerpt, &rec.Score, &verdict, &rec.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Verdict = domain.Verdict(verdict)
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}
