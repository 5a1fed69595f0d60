package media

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

var ownerColumns = map[catalog.Type]string{
	catalog.TypeProduct:     "product_id",
	catalog.TypeService:     "service_id",
	catalog.TypeEducational: "article_id",
}

// ListByItem вложения позиции: сначала главное, дальше по position.
func (r *Repo) ListByItem(ctx context.Context, t catalog.Type, itemID int64) ([]Media, error) {
	col, ok := ownerColumns[t]
	if !ok {
		return nil, fmt.Errorf("list media: unknown type %q", t)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, file_id, kind, is_main, position
		FROM media
		WHERE `+col+` = $1
		ORDER BY is_main DESC, position, id
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var out []Media
	for rows.Next() {
		m := Media{ItemType: t, ItemID: itemID}
		if err := rows.Scan(&m.ID, &m.FileID, &m.Kind, &m.IsMain, &m.Position); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
