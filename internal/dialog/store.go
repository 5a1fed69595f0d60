package dialog

import (
	"context"
	"time"
)

// Store хранит ConversationState по user id.
// Get для неизвестного или просроченного пользователя возвращает новую idle-сессию.
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Reset(ctx context.Context, userID int64) error
}

func expired(updatedAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(updatedAt) > ttl
}
