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
	insertManuscriptQuery = `
		INSERT INTO manuscripts (id, user_id, filename, format, size_bytes, extracted_text, stats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	getManuscriptQuery = `
		SELECT id, user_id, filename, format, size_bytes, extracted_text, stats, created_at, updated_at
		FROM manuscripts
		WHERE id = $1
	`

	listManuscriptsQuery = `
		SELECT id, filename, format, size_bytes, created_at
		FROM manuscripts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	deleteManuscriptQuery = `DELETE FROM manuscripts WHERE id = $1`
)

// ManuscriptRepository представляет репозиторий рукописей.
type ManuscriptRepository struct {
	pool *pgxpool.Pool
}

// NewManuscriptRepository создает новый экземпляр репозитория рукописей.
func NewManuscriptRepository(pool *pgxpool.Pool) *ManuscriptRepository {
	return &ManuscriptRepository{pool: pool}
}

// Create сохраняет новую рукопись вместе с извлеченным текстом и статистикой.
func (r *ManuscriptRepository) Create(ctx context.Context, m model.Manuscript) (model.Manuscript, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.pool.Exec(ctx, insertManuscriptQuery,
		m.ID,
		m.UserID,
		m.Filename,
		m.Format,
		m.SizeBytes,
		m.ExtractedText,
		m.Stats,
		now,
	)
	if err != nil {
		return model.Manuscript{}, err
	}

	return m, nil
}

// GetByID получает рукопись по ID.
func (r *ManuscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Manuscript, error) {
	var m model.Manuscript
	err := pgxscan.Get(ctx, r.pool, &m, getManuscriptQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Manuscript{}, model.ErrManuscriptNotFound
		}
		return model.Manuscript{}, err
	}
	return m, nil
}

// ListByUser возвращает страницу рукописей пользователя, новые первыми.
func (r *ManuscriptRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ManuscriptSummary, error) {
	var items []model.ManuscriptSummary
	err := pgxscan.Select(ctx, r.pool, &items, listManuscriptsQuery, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete удаляет рукопись. Возвращает ErrManuscriptNotFound, если записи нет.
func (r *ManuscriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteManuscriptQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrManuscriptNotFound
	}
	return nil
}
