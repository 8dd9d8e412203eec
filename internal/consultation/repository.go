package consultation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mishura/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("consultation not found")

const columns = `id, user_id, kind, occasion, preferences, image_path, advice, created_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, c *Consultation) error {
	if c.Kind == "" {
		c.Kind = KindSingle
	}

	return r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO consultations (user_id, kind, occasion, preferences, image_path, advice)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`),
		c.UserID, c.Kind, c.Occasion, c.Preferences, c.ImagePath, c.Advice,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByID only returns consultations owned by userID.
func (r *SQLRepository) GetByID(ctx context.Context, id, userID int64) (*Consultation, error) {
	var c Consultation
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT `+columns+` FROM consultations WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]Consultation, error) {
	if limit <= 0 {
		limit = 20
	}

	out := []Consultation{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT `+columns+`
		FROM consultations
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`),
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM consultations`)
	return n, err
}

func (r *SQLRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM consultations WHERE created_at >= ?`), db.Timestamp(since))
	return n, err
}
