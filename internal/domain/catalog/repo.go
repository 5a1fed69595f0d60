package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// itemTables: таблица позиций для каждого дерева
var itemTables = map[Type]string{
	TypeProduct:     "products",
	TypeService:     "services",
	TypeEducational: "articles",
}

// ListRoots Корневые категории дерева, по алфавиту
func (r *Repo) ListRoots(ctx context.Context, t Type) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, type, parent_id, created_at
		FROM categories
		WHERE parent_id IS NULL AND type = $1
		ORDER BY name, id
	`, string(t))
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	return scanCategories(rows)
}

// ListChildren Прямые потомки узла. Пустой список = лист, дальше показываем позиции.
func (r *Repo) ListChildren(ctx context.Context, parentID int64) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, type, parent_id, created_at
		FROM categories
		WHERE parent_id = $1
		ORDER BY name, id
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return scanCategories(rows)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, type, parent_id, created_at
		FROM categories WHERE id = $1
	`, id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &c, nil
}

// CountItems количество позиций во всём поддереве каждого узла из ids.
// Узлы без позиций тоже попадают в результат с нулём.
func (r *Repo) CountItems(ctx context.Context, t Type, ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	table, ok := itemTables[t]
	if !ok {
		return nil, fmt.Errorf("count items: unknown type %q", t)
	}
	rows, err := r.pool.Query(ctx, `
		WITH RECURSIVE tree AS (
			SELECT id AS root_id, id FROM categories WHERE id = ANY($1)
			UNION ALL
			SELECT tree.root_id, c.id FROM categories c JOIN tree ON c.parent_id = tree.id
		)
		SELECT tree.root_id, count(i.id)
		FROM tree
		LEFT JOIN `+table+` i ON i.category_id = tree.id
		GROUP BY tree.root_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func scanCategories(rows pgx.Rows) ([]Category, error) {
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
