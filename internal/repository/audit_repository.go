package repository

import (
	"context"
	"encoding/json"

	"talent-scout/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// AuditRepository appends query/answer pairs to the audit log. The log is
// append-only: no update or delete operation is exposed.
type AuditRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAuditRepository(db *pgxpool.Pool, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditRepository) Append(ctx context.Context, rec *models.AuditRecord) error {
	response, err := json.Marshal(rec.Response)
	if err != nil {
		return err
	}

	query := squirrel.Insert("audit_records").
		Columns("request_id", "created_at", "caller", "query", "response").
		Values(rec.RequestID, rec.Timestamp, rec.Caller, rec.Query, response).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
