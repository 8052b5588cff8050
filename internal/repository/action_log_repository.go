package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcopy-server/internal/model"
)

const (
	insertActionQuery = `
		INSERT INTO action_log (id, user_id, action, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	listActionsQuery = `
		SELECT id, user_id, action, entity_id, detail, created_at
		FROM action_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
)

// ActionLogRepository представляет журнал действий пользователей.
type ActionLogRepository struct {
	pool *pgxpool.Pool
}

// NewActionLogRepository создает новый экземпляр журнала действий.
func NewActionLogRepository(pool *pgxpool.Pool) *ActionLogRepository {
	return &ActionLogRepository{pool: pool}
}

// Append добавляет запись в журнал действий.
func (r *ActionLogRepository) Append(ctx context.Context, entry model.ActionLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, insertActionQuery,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.EntityID,
		entry.Detail,
		entry.CreatedAt,
	)
	return err
}

// ListByUser возвращает страницу действий пользователя, новые первыми.
func (r *ActionLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ActionLogEntry, error) {
	var items []model.ActionLogEntry
	err := pgxscan.Select(ctx, r.pool, &items, listActionsQuery, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return items, nil
}
