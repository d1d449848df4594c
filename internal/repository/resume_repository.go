package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-scout/internal/apperr"
	"talent-scout/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ResumeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewResumeRepository(db *pgxpool.Pool, logger *zap.Logger) *ResumeRepository {
	return &ResumeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new record. A primary-key collision is reported as
// apperr.ErrDuplicateIdentifier so the caller can disambiguate the slug.
func (r *ResumeRepository) Create(ctx context.Context, rec *models.ResumeRecord) error {
	query := squirrel.Insert("resumes").
		Columns("id", "file_name", "content", "created_at").
		Values(rec.ID, rec.FileName, rec.Content, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", apperr.ErrDuplicateIdentifier, rec.ID)
		}
		return err
	}
	return nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*models.ResumeRecord, error) {
	query := squirrel.Select("id", "file_name", "content", "created_at").
		From("resumes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rec models.ResumeRecord
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rec.ID, &rec.FileName, &rec.Content, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
		}
		return nil, err
	}

	return &rec, nil
}

// List returns records ordered lexicographically by identifier. Pure
// pagination, no filtering.
func (r *ResumeRepository) List(ctx context.Context, limit, offset int) ([]*models.ResumeRecord, error) {
	query := squirrel.Select("id", "file_name", "content", "created_at").
		From("resumes").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ResumeRecord
	for rows.Next() {
		var rec models.ResumeRecord
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.Content, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (r *ResumeRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("resumes").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
