package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo хранит сессии в таблице dialog_states (переживают рестарт бота).
type Repo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewRepo(pool *pgxpool.Pool, ttl time.Duration) *Repo { return &Repo{pool: pool, ttl: ttl} }

func (r *Repo) Get(ctx context.Context, userID int64) (*Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT payload, updated_at FROM dialog_states WHERE user_id = $1`, userID)
	var raw []byte
	var updatedAt time.Time
	if err := row.Scan(&raw, &updatedAt); err != nil {
		// если строки нет: считаем, что состояния пока нет
		if errors.Is(err, pgx.ErrNoRows) {
			return NewSession(userID), nil
		}
		return nil, fmt.Errorf("get dialog state: %w", err)
	}
	if expired(updatedAt, r.ttl, time.Now()) {
		return NewSession(userID), nil
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode dialog state: %w", err)
	}
	s.UserID = userID
	s.UpdatedAt = updatedAt
	return &s, nil
}

func (r *Repo) Set(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode dialog state: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO dialog_states (user_id, state, payload, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (user_id) DO UPDATE SET
		  state=$2, payload=$3, updated_at=now()
	`, s.UserID, string(s.State), raw)
	if err != nil {
		return fmt.Errorf("set dialog state: %w", err)
	}
	return nil
}

func (r *Repo) Reset(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM dialog_states WHERE user_id = $1`, userID)
	return err
}
