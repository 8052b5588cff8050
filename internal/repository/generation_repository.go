package repository

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcopy-server/internal/model"
)

const (
	insertGenerationQuery = `
		INSERT INTO generations (id, manuscript_id, user_id, generation_type, status, result_text, error_message, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	getGenerationQuery = `
		SELECT id, manuscript_id, user_id, generation_type, status, result_text, error_message, duration_ms, created_at
		FROM generations
		WHERE id = $1
	`

	listGenerationsQuery = `
		SELECT id, manuscript_id, user_id, generation_type, status, result_text, error_message, duration_ms, created_at
		FROM generations
		WHERE manuscript_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
)

// GenerationRepository представляет репозиторий результатов генерации.
type GenerationRepository struct {
	pool *pgxpool.Pool
}

// NewGenerationRepository создает новый экземпляр репозитория генераций.
func NewGenerationRepository(pool *pgxpool.Pool) *GenerationRepository {
	return &GenerationRepository{pool: pool}
}

// Create сохраняет результат генерации (успешный или неуспешный).
func (r *GenerationRepository) Create(ctx context.Context, g model.Generation) (model.Generation, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, insertGenerationQuery,
		g.ID,
		g.ManuscriptID,
		g.UserID,
		g.Type,
		g.Status,
		g.ResultText,
		g.Error,
		g.DurationMs,
		g.CreatedAt,
	)
	if err != nil {
		return model.Generation{}, err
	}

	return g, nil
}

// GetByID получает результат генерации по ID.
func (r *GenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Generation, error) {
	var g model.Generation
	err := pgxscan.Get(ctx, r.pool, &g, getGenerationQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Generation{}, model.ErrGenerationNotFound
		}
		return model.Generation{}, err
	}
	return g, nil
}

// ListByManuscript возвращает страницу генераций по рукописи, новые первыми.
func (r *GenerationRepository) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID, limit, offset int) ([]model.Generation, error) {
	var items []model.Generation
	err := pgxscan.Select(ctx, r.pool, &items, listGenerationsQuery, manuscriptID, limit, offset)
	if err != nil {
		return nil, err
	}
	return items, nil
}
