package items

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Все три таблицы приводятся к одному набору колонок, алиас таблицы всегда i.
var selects = map[catalog.Type]string{
	catalog.TypeProduct: `
		SELECT i.id, i.name, i.description, i.price, COALESCE(b.name, ''), i.tags, i.in_stock, i.category_id, i.created_at
		FROM products i
		LEFT JOIN brands b ON b.id = i.brand_id`,
	catalog.TypeService: `
		SELECT i.id, i.name, i.description, i.price, '', i.tags, TRUE, i.category_id, i.created_at
		FROM services i`,
	catalog.TypeEducational: `
		SELECT i.id, i.title, i.body, NULL::BIGINT, '', '{}'::TEXT[], TRUE, i.category_id, i.created_at
		FROM articles i`,
}

var searchConds = map[catalog.Type]string{
	catalog.TypeProduct:     `(i.name ILIKE $1 OR b.name ILIKE $1 OR array_to_string(i.tags, ' ') ILIKE $1)`,
	catalog.TypeService:     `(i.name ILIKE $1 OR array_to_string(i.tags, ' ') ILIKE $1)`,
	catalog.TypeEducational: `(i.title ILIKE $1 OR i.body ILIKE $1)`,
}

func selectFor(t catalog.Type) (string, error) {
	q, ok := selects[t]
	if !ok {
		return "", fmt.Errorf("unknown item type %q", t)
	}
	return q, nil
}

// ListByCategory позиции, привязанные непосредственно к узлу (без потомков).
func (r *Repo) ListByCategory(ctx context.Context, t catalog.Type, categoryID int64) ([]Item, error) {
	q, err := selectFor(t)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, q+`
		WHERE i.category_id = $1
		ORDER BY 2, 1
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", t, err)
	}
	return scanItems(rows, t)
}

func (r *Repo) GetByID(ctx context.Context, t catalog.Type, id int64) (*Item, error) {
	q, err := selectFor(t)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, q+` WHERE i.id = $1`, id)
	it, err := scanItem(row, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", t, id, err)
	}
	return it, nil
}

// Search ищет по названию, бренду и тегам во всех типах из фильтра.
// Результат общий для всех типов: по имени, не больше f.Limit.
func (r *Repo) Search(ctx context.Context, query string, f Filter) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	types := f.Types
	if len(types) == 0 {
		types = catalog.Types
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(query) + "%"

	var out []Item
	for _, t := range types {
		q, err := selectFor(t)
		if err != nil {
			return nil, err
		}
		q += " WHERE " + searchConds[t]
		if f.InStockOnly && t == catalog.TypeProduct {
			q += " AND i.in_stock"
		}
		q += fmt.Sprintf(" ORDER BY 2, 1 LIMIT %d", limit)

		rows, err := r.pool.Query(ctx, q, pattern)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", t, err)
		}
		found, err := scanItems(rows, t)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Name != out[b].Name {
			return out[a].Name < out[b].Name
		}
		return out[a].ID < out[b].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanItem(row pgx.Row, t catalog.Type) (*Item, error) {
	it := Item{Type: t}
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.Brand,
		&it.Tags,
		&it.InStock,
		&it.CategoryID,
		&it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func scanItems(rows pgx.Rows, t catalog.Type) ([]Item, error) {
	defer rows.Close()
	var out []Item
	for rows.Next() {
		it, err := scanItem(rows, t)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}
