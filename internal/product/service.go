package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	FindProductByName(ctx context.Context, name string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, page.Info, error)
	ListProductsByCategory(ctx context.Context, categoryName string) ([]*Product, error)
	ListActiveProducts(ctx context.Context) ([]*Product, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindExisting(ctx context.Context, names []string) ([]*Product, error)
	CreateProducts(ctx context.Context, products []*Product) error
	Commit() error
	Rollback() error
}

// CategoryResolver finds a managed category by name, ignoring case.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Name          string
	CategoryName  string
	StockQuantity int
	MinimumStock  *int
	UnitPrice     decimal.Decimal
}

type ListFilter struct {
	Page            page.Request
	Search          string
	IncludeArchived bool
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if strings.TrimSpace(p.CategoryName) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}

	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalid)
	}

	if p.MinimumStock != nil && *p.MinimumStock < 0 {
		return fmt.Errorf("%w: minimum stock cannot be negative", ErrInvalid)
	}

	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price cannot be negative", ErrInvalid)
	}

	return nil
}

func (p CreateParams) toProduct() *Product {
	minimum := DefaultMinimumStock
	if p.MinimumStock != nil {
		minimum = *p.MinimumStock
	}

	return &Product{
		Name:          strings.TrimSpace(p.Name),
		CategoryName:  strings.TrimSpace(p.CategoryName),
		StockQuantity: p.StockQuantity,
		MinimumStock:  minimum,
		UnitPrice:     p.UnitPrice.Round(2),
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	err := params.validate()
	if err != nil {
		return nil, err
	}

	p := params.toProduct()
	if err := s.ensureUniqueName(ctx, p.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if p.CategoryName, err = s.categoryName(ctx, p.CategoryName); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Product, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	next := params.toProduct()
	if err := s.ensureUniqueName(ctx, next.Name, id); err != nil {
		return nil, err
	}

	if next.CategoryName, err = s.categoryName(ctx, next.CategoryName); err != nil {
		return nil, err
	}

	next.ID = current.ID
	next.Code = current.Code
	next.Archived = current.Archived
	next.CreatedAt = current.CreatedAt

	if err := s.repo.UpdateProduct(ctx, next); err != nil {
		return nil, err
	}

	return next, nil
}

// categoryName returns the managed category's own spelling of name.
func (s *Service) categoryName(ctx context.Context, name string) (string, error) {
	c, err := s.categories.Resolve(ctx, name)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return "", fmt.Errorf("%w: unknown category %q", ErrInvalid, name)
		}

		return "", fmt.Errorf("resolving category: %w", err)
	}

	return c.Name, nil
}

// ensureUniqueName checks names against the whole catalog, archived rows included.
func (s *Service) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindProductByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking product name: %w", err)
	}

	if existing.ID != self {
		return ErrDuplicateName
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) FindByName(ctx context.Context, name string) (*Product, error) {
	return s.repo.FindProductByName(ctx, strings.TrimSpace(name))
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, page.Info, error) {
	filter.Page = filter.Page.Normalize()
	return s.repo.ListProducts(ctx, filter)
}

// ListByCategory returns the non-archived products of a category.
func (s *Service) ListByCategory(ctx context.Context, categoryName string) ([]*Product, error) {
	return s.repo.ListProductsByCategory(ctx, categoryName)
}

// ListActive returns every non-archived product.
func (s *Service) ListActive(ctx context.Context) ([]*Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

func (s *Service) Archive(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetArchived(ctx, id, true)
}

func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetArchived(ctx, id, false)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

type ImportResult struct {
	Imported  []*Product
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Product
}

// ImportBatch creates all products in one transaction. When any incoming name
// already exists nothing is written and the conflicts are returned instead.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	seen := make(map[string]struct{}, len(params))
	names := make([]string, 0, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("row %d: %w: %q appears twice", i+1, ErrDuplicateName, p.Name)
		}

		seen[key] = struct{}{}
		names = append(names, strings.TrimSpace(p.Name))
	}

	canonical := make(map[string]string)

	for i, p := range params {
		key := strings.ToLower(strings.TrimSpace(p.CategoryName))
		if _, ok := canonical[key]; ok {
			continue
		}

		name, err := s.categoryName(ctx, p.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		canonical[key] = name
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindExisting(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	lookup := make(map[string]*Product, len(existing))
	for _, e := range existing {
		lookup[strings.ToLower(e.Name)] = e
	}

	var conflicts []Conflict

	for _, p := range params {
		if e, found := lookup[strings.ToLower(strings.TrimSpace(p.Name))]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: e})
		}
	}

	if len(conflicts) > 0 {
		return &ImportResult{Conflicts: conflicts}, nil
	}

	products := make([]*Product, len(params))
	for i, p := range params {
		products[i] = p.toProduct()
		products[i].CategoryName = canonical[strings.ToLower(products[i].CategoryName)]
	}

	if err := itx.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: products}, nil
}
