package inquiries

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create вставляет запрос один раз на SubmissionKey.
// created=false: запрос с таким ключом уже есть, новая строка не появилась.
func (r *Repo) Create(ctx context.Context, in *Inquiry) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}
	if in.Status == "" {
		in.Status = StatusNew
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inquiries (user_id, name, phone, description, product_id, service_id, status, submission_key)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (submission_key) DO NOTHING
		RETURNING id, created_at
	`, in.UserID, in.Name, in.Phone, in.Description, in.ProductID, in.ServiceID, string(in.Status), in.SubmissionKey)
	if err := row.Scan(&in.ID, &in.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert inquiry: %w", err)
	}
	return true, nil
}

// ListByUser последние запросы пользователя, новые сверху.
func (r *Repo) ListByUser(ctx context.Context, userID int64, limit int) ([]Inquiry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, phone, description, product_id, service_id, status, submission_key::TEXT, created_at
		FROM inquiries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		var in Inquiry
		if err := rows.Scan(&in.ID, &in.UserID, &in.Name, &in.Phone, &in.Description,
			&in.ProductID, &in.ServiceID, &in.Status, &in.SubmissionKey, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
