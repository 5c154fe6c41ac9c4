package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/database"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
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

// Expected column order: id, seq, name, category_name, status, archived, archived_at, created_at, updated_at
func scanServiceType(s scanner) (*servicetype.ServiceType, error) {
	var (
		st  servicetype.ServiceType
		seq int64
	)

	if err := s.Scan(
		&st.ID, &seq, &st.Name, &st.CategoryName, &st.Status,
		&st.Archived, &st.ArchivedAt, &st.CreatedAt, &st.UpdatedAt,
	); err != nil {
		return nil, err
	}

	st.Code = servicetype.FormatCode(seq)

	return &st, nil
}

const selectServiceTypeColumns = `
	id, seq, name, category_name, status, archived, archived_at, created_at, updated_at
`

func (s *Store) CreateServiceType(ctx context.Context, st *servicetype.ServiceType) error {
	query := `
		INSERT INTO service_types (name, category_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, seq, created_at, updated_at
	`

	var seq int64

	err := s.db.QueryRowContext(ctx, query, st.Name, st.CategoryName, st.Status).
		Scan(&st.ID, &seq, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return servicetype.ErrDuplicateName
		}

		return fmt.Errorf("creating service type: %w", err)
	}

	st.Code = servicetype.FormatCode(seq)

	return nil
}

func (s *Store) GetServiceType(ctx context.Context, id uuid.UUID) (*servicetype.ServiceType, error) {
	query := `SELECT ` + selectServiceTypeColumns + ` FROM service_types WHERE id = $1`

	st, err := scanServiceType(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servicetype.ErrNotFound
		}

		return nil, fmt.Errorf("getting service type: %w", err)
	}

	return st, nil
}

func (s *Store) FindActiveByName(ctx context.Context, name string) (*servicetype.ServiceType, error) {
	query := `SELECT ` + selectServiceTypeColumns + `
		FROM service_types
		WHERE archived = FALSE AND LOWER(name) = LOWER($1)
		LIMIT 1`

	st, err := scanServiceType(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servicetype.ErrNotFound
		}

		return nil, fmt.Errorf("finding service type by name: %w", err)
	}

	return st, nil
}

func (s *Store) UpdateServiceType(ctx context.Context, st *servicetype.ServiceType) error {
	query := `
		UPDATE service_types
		SET name = $1, category_name = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, st.Name, st.CategoryName, st.Status, st.ID).Scan(&st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return servicetype.ErrNotFound
		}

		if database.IsUniqueViolation(err) {
			return servicetype.ErrDuplicateName
		}

		return fmt.Errorf("updating service type: %w", err)
	}

	return nil
}

func (s *Store) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `
		UPDATE service_types
		SET archived = $1,
			archived_at = CASE WHEN $1 THEN NOW() ELSE NULL END,
			updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, archived, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return servicetype.ErrDuplicateName
		}

		return fmt.Errorf("archiving service type: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return servicetype.ErrNotFound
	}

	return nil
}

func (s *Store) ListServiceTypes(ctx context.Context, req page.Request) ([]*servicetype.ServiceType, page.Info, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_types WHERE archived = FALSE`).Scan(&total); err != nil {
		return nil, page.Info{}, fmt.Errorf("counting service types: %w", err)
	}

	req = req.Clamp(total)
	query := `SELECT ` + selectServiceTypeColumns + `
		FROM service_types
		WHERE archived = FALSE
		ORDER BY seq ASC
		LIMIT $1 OFFSET $2`

	types, err := s.query(ctx, query, req.PerPage, req.Offset())
	if err != nil {
		return nil, page.Info{}, err
	}

	return types, page.NewInfo(req, total), nil
}

func (s *Store) ListArchivedServiceTypes(ctx context.Context) ([]*servicetype.ServiceType, error) {
	query := `SELECT ` + selectServiceTypeColumns + `
		FROM service_types
		WHERE archived = TRUE
		ORDER BY archived_at DESC`

	return s.query(ctx, query)
}

func (s *Store) ListSelectable(ctx context.Context) ([]*servicetype.ServiceType, error) {
	query := `SELECT ` + selectServiceTypeColumns + `
		FROM service_types
		WHERE archived = FALSE AND status = 'Active'
		ORDER BY name ASC`

	return s.query(ctx, query)
}

func (s *Store) CountActiveTransactions(ctx context.Context, serviceName string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE is_archived = FALSE AND LOWER(service_type) = LOWER($1)`

	var n int
	if err := s.db.QueryRowContext(ctx, query, serviceName).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return n, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*servicetype.ServiceType, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing service types: %w", err)
	}
	defer rows.Close()

	var types []*servicetype.ServiceType

	for rows.Next() {
		st, err := scanServiceType(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service type: %w", err)
		}

		types = append(types, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service type rows: %w", err)
	}

	return types, nil
}
