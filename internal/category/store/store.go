package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/database"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, description, created_at, updated_at
func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

const selectCategoryColumns = `id, name, description, created_at, updated_at`

// usageQuery counts rows filed under the category name in $1.
const usageQuery = `
	SELECT
		(SELECT COUNT(*) FROM products WHERE LOWER(category_name) = LOWER($1)) +
		(SELECT COUNT(*) FROM service_types WHERE LOWER(category_name) = LOWER($1))
`

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return category.ErrDuplicateName
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) FindCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE LOWER(name) = LOWER($1)`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("finding category by name: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category, oldName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning category update: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE categories
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	if err := tx.QueryRowContext(ctx, query, c.Name, c.Description, c.ID).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		if database.IsUniqueViolation(err) {
			return category.ErrDuplicateName
		}

		return fmt.Errorf("updating category: %w", err)
	}

	if c.Name != oldName {
		for _, table := range []string{"products", "service_types"} {
			refile := `UPDATE ` + table + ` SET category_name = $1, updated_at = NOW() WHERE LOWER(category_name) = LOWER($2)`
			if _, err := tx.ExecContext(ctx, refile, c.Name, oldName); err != nil {
				return fmt.Errorf("refiling %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing category update: %w", err)
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM categories c
		WHERE c.id = $1
		  AND NOT EXISTS (SELECT 1 FROM products p WHERE LOWER(p.category_name) = LOWER(c.name))
		  AND NOT EXISTS (SELECT 1 FROM service_types st WHERE LOWER(st.category_name) = LOWER(c.name))
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n > 0 {
		return nil
	}

	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	return category.ErrInUse
}

func (s *Store) ListCategories(ctx context.Context, req page.Request) ([]*category.Category, page.Info, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, page.Info{}, fmt.Errorf("counting categories: %w", err)
	}

	req = req.Clamp(total)
	query := `SELECT ` + selectCategoryColumns + ` FROM categories ORDER BY created_at ASC, name ASC LIMIT $1 OFFSET $2`

	categories, err := s.queryCategories(ctx, query, req.PerPage, req.Offset())
	if err != nil {
		return nil, page.Info{}, err
	}

	return categories, page.NewInfo(req, total), nil
}

func (s *Store) ListAllCategories(ctx context.Context) ([]*category.Category, error) {
	return s.queryCategories(ctx, `SELECT `+selectCategoryColumns+` FROM categories ORDER BY name ASC`)
}

func (s *Store) CountUsage(ctx context.Context, name string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, usageQuery, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting category usage: %w", err)
	}

	return n, nil
}

func (s *Store) queryCategories(ctx context.Context, query string, args ...any) ([]*category.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
