package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareswara/libris/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Record(ctx context.Context, e repository.AuditEntry) error {
	var md []byte
	if e.Metadata != nil {
		md, _ = json.Marshal(e.Metadata)
	}
	// user_id column is a UUID; pass NULL when the actor is unknown
	var userID any
	if e.UserID != "" {
		userID = e.UserID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, e.Email, e.Action, e.IP, e.UserAgent, md)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
