package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/database"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

// importLockKey serializes product imports across API instances.
const importLockKey int64 = 0x70726f64

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, seq, name, category_name, stock_quantity, minimum_stock, unit_price, archived, created_at, updated_at
func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var seq int64

	if err := s.Scan(
		&p.ID, &seq, &p.Name, &p.CategoryName, &p.StockQuantity, &p.MinimumStock,
		&p.UnitPrice, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Code = product.FormatCode(seq)

	return &p, nil
}

const selectProductColumns = `
	id, seq, name, category_name, stock_quantity, minimum_stock, unit_price, archived, created_at, updated_at
`

type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertProduct(ctx context.Context, db execer, p *product.Product) error {
	query := `
		INSERT INTO products (name, category_name, stock_quantity, minimum_stock, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, seq, created_at, updated_at
	`

	var seq int64

	err := db.QueryRowContext(ctx, query,
		p.Name,
		p.CategoryName,
		p.StockQuantity,
		p.MinimumStock,
		p.UnitPrice,
	).Scan(&p.ID, &seq, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return product.ErrDuplicateName
		}

		return fmt.Errorf("creating product: %w", err)
	}

	p.Code = product.FormatCode(seq)

	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	return insertProduct(ctx, s.db, p)
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) FindProductByName(ctx context.Context, name string) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE LOWER(name) = LOWER($1) LIMIT 1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("finding product by name: %w", err)
	}

	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $1, category_name = $2, stock_quantity = $3, minimum_stock = $4, unit_price = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.CategoryName,
		p.StockQuantity,
		p.MinimumStock,
		p.UnitPrice,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		if database.IsUniqueViolation(err) {
			return product.ErrDuplicateName
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `UPDATE products SET archived = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, archived, id)
	if err != nil {
		return fmt.Errorf("archiving product: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return product.ErrNotFound
	}

	return nil
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, page.Info, error) {
	where := ` WHERE 1 = 1`

	var args []any

	argIdx := 1

	if !filter.IncludeArchived {
		where += " AND archived = FALSE"
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR category_name ILIKE $%d)", argIdx, argIdx)

		args = append(args, database.ContainsPattern(filter.Search))
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, page.Info{}, fmt.Errorf("counting products: %w", err)
	}

	req := filter.Page.Clamp(total)
	query := `SELECT ` + selectProductColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY seq ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, req.PerPage, req.Offset())

	products, err := s.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, page.Info{}, err
	}

	return products, page.NewInfo(req, total), nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE archived = FALSE AND LOWER(category_name) = LOWER($1)
		ORDER BY name ASC`

	return s.queryProducts(ctx, query, category)
}

func (s *Store) ListActiveProducts(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE archived = FALSE ORDER BY category_name, name`

	return s.queryProducts(ctx, query)
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (product.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindExisting(ctx context.Context, names []string) ([]*product.Product, error) {
	if len(names) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	query := `SELECT ` + selectProductColumns + ` FROM products WHERE LOWER(name) = ANY($1)`

	rows, err := itx.tx.QueryContext(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("finding existing products: %w", err)
	}
	defer rows.Close()

	var existing []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		existing = append(existing, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating existing rows: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateProducts(ctx context.Context, products []*product.Product) error {
	for _, p := range products {
		if err := insertProduct(ctx, itx.tx, p); err != nil {
			return err
		}
	}

	return nil
}
