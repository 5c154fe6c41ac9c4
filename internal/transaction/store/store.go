package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/database"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, seq, customer_name, service_type, category_kind, product_label, product_id,
// total_pages, price_per_unit, quantity, total_amount, status, date, is_archived, archived_at, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx        transaction.Transaction
		seq       int64
		kind      string
		productID *uuid.UUID
	)

	if err := s.Scan(
		&tx.ID, &seq, &tx.CustomerName, &tx.ServiceType, &kind, &tx.Product.Label, &productID,
		&tx.TotalPages, &tx.PricePerUnit, &tx.Quantity, &tx.TotalAmount, &tx.Status, &tx.Date,
		&tx.Archived, &tx.ArchivedAt, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Product.Category = transaction.CategoryKind(kind)
	tx.ProductID = productID
	tx.TransactionID = transaction.FormatTransactionID(seq)
	tx.QueueNumber = transaction.FormatQueueNumber(seq)

	return &tx, nil
}

const selectTransactionColumns = `
	id, seq, customer_name, service_type, category_kind, product_label, product_id,
	total_pages, price_per_unit, quantity, total_amount, status, date,
	is_archived, archived_at, created_at, updated_at
`

// transactionCodeExpr renders the display id the same way FormatTransactionID does.
const transactionCodeExpr = `('T-' || CASE WHEN seq < 1000 THEN LPAD(seq::text, 3, '0') ELSE seq::text END)`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			customer_name, service_type, category_kind, product_label, product_id,
			total_pages, price_per_unit, quantity, total_amount, status, date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, seq, created_at, updated_at
	`

	var seq int64

	err := s.db.QueryRowContext(ctx, query,
		tx.CustomerName,
		tx.ServiceType,
		tx.Product.Category,
		tx.Product.Label,
		tx.ProductID,
		tx.TotalPages,
		tx.PricePerUnit,
		tx.Quantity,
		tx.TotalAmount,
		tx.Status,
		tx.Date,
	).Scan(&tx.ID, &seq, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	tx.TransactionID = transaction.FormatTransactionID(seq)
	tx.QueueNumber = transaction.FormatQueueNumber(seq)

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, page.Info, error) {
	where := ` WHERE is_archived = $1`
	args := []any{filter.Archived}
	argIdx := 2

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (customer_name ILIKE $%d OR service_type ILIKE $%d OR %s ILIKE $%d)",
			argIdx, argIdx, transactionCodeExpr, argIdx)

		args = append(args, database.ContainsPattern(filter.Search))
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, page.Info{}, fmt.Errorf("counting transactions: %w", err)
	}

	order := " ORDER BY seq ASC"
	if filter.Archived {
		order = " ORDER BY archived_at DESC, seq DESC"
	}

	req := filter.Page.Clamp(total)
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions` + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, req.PerPage, req.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, page.Info{}, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, page.Info{}, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, page.Info{}, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, page.NewInfo(req, total), nil
}

// ListCompleted returns completed transactions dated within [start, end], archived ones included.
func (s *Store) ListCompleted(ctx context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE status = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, seq ASC`

	rows, err := s.db.QueryContext(ctx, query, transaction.StatusCompleted, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing completed transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return updateTransaction(ctx, s.db, tx)
}

func updateTransaction(ctx context.Context, db execer, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET customer_name = $1, service_type = $2, category_kind = $3, product_label = $4, product_id = $5,
			total_pages = $6, price_per_unit = $7, quantity = $8, total_amount = $9, status = $10, date = $11,
			is_archived = $12, archived_at = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`

	err := db.QueryRowContext(ctx, query,
		tx.CustomerName,
		tx.ServiceType,
		tx.Product.Category,
		tx.Product.Label,
		tx.ProductID,
		tx.TotalPages,
		tx.PricePerUnit,
		tx.Quantity,
		tx.TotalAmount,
		tx.Status,
		tx.Date,
		tx.Archived,
		tx.ArchivedAt,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

// CompleteTransaction locks the row, checks it is still Pending and applies the
// status change and stock decrement in one database transaction. Stock never
// goes below zero.
func (s *Store) CompleteTransaction(ctx context.Context, tx *transaction.Transaction, consume *transaction.StockConsumption) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning complete tx: %w", err)
	}
	defer dbTx.Rollback()

	var (
		status   transaction.Status
		archived bool
	)

	err = dbTx.QueryRowContext(ctx,
		`SELECT status, is_archived FROM transactions WHERE id = $1 FOR UPDATE`, tx.ID,
	).Scan(&status, &archived)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("locking transaction: %w", err)
	}

	if status != transaction.StatusPending || archived {
		return &transaction.TransitionError{ID: tx.ID, Action: transaction.ActionComplete, Status: status, Archived: archived}
	}

	if err := updateTransaction(ctx, dbTx, tx); err != nil {
		return err
	}

	if consume != nil {
		res, err := dbTx.ExecContext(ctx,
			`UPDATE products SET stock_quantity = GREATEST(stock_quantity - $1, 0), updated_at = NOW() WHERE id = $2`,
			consume.Items, consume.ProductID,
		)
		if err != nil {
			return fmt.Errorf("consuming stock: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("consuming stock: product %s no longer exists", consume.ProductID)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing complete tx: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
