package servicetype

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=servicetype
type Repository interface {
	CreateServiceType(ctx context.Context, st *ServiceType) error
	GetServiceType(ctx context.Context, id uuid.UUID) (*ServiceType, error)
	FindActiveByName(ctx context.Context, name string) (*ServiceType, error)
	UpdateServiceType(ctx context.Context, st *ServiceType) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error

	ListServiceTypes(ctx context.Context, req page.Request) ([]*ServiceType, page.Info, error)
	ListArchivedServiceTypes(ctx context.Context) ([]*ServiceType, error)
	ListSelectable(ctx context.Context) ([]*ServiceType, error)

	// CountActiveTransactions counts non-archived transactions referencing the service name.
	CountActiveTransactions(ctx context.Context, serviceName string) (int, error)
}

// ProductLister is the part of the product catalog used to list a category's products.
type ProductLister interface {
	ListByCategory(ctx context.Context, categoryName string) ([]*product.Product, error)
}

// CategoryResolver finds a managed category by name, ignoring case.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	products   ProductLister
	categories CategoryResolver
}

func NewService(repo Repository, products ProductLister, categories CategoryResolver) *Service {
	return &Service{repo: repo, products: products, categories: categories}
}

type Params struct {
	Name         string
	CategoryName string
	Status       Status
}

func (p Params) normalize() (Params, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.CategoryName = strings.TrimSpace(p.CategoryName)

	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if p.Status == "" {
		p.Status = StatusActive
	}

	if !p.Status.Valid() {
		return p, fmt.Errorf("%w: unknown status %q", ErrInvalid, p.Status)
	}

	return p, nil
}

func (s *Service) Create(ctx context.Context, params Params) (*ServiceType, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, params.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if params.CategoryName, err = s.categoryName(ctx, params.CategoryName); err != nil {
		return nil, err
	}

	st := &ServiceType{
		Name:         params.Name,
		CategoryName: params.CategoryName,
		Status:       params.Status,
	}
	if err := s.repo.CreateServiceType(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

// Update replaces the editable fields. Renaming is refused while active
// transactions still reference the old name.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*ServiceType, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != st.Name {
		if err := s.ensureUnused(ctx, st.Name); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUniqueName(ctx, params.Name, id); err != nil {
		return nil, err
	}

	if params.CategoryName, err = s.categoryName(ctx, params.CategoryName); err != nil {
		return nil, err
	}

	st.Name = params.Name
	st.CategoryName = params.CategoryName
	st.Status = params.Status

	if err := s.repo.UpdateServiceType(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) Archive(ctx context.Context, id uuid.UUID) error {
	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return err
	}

	if st.Archived {
		return nil
	}

	if err := s.ensureUnused(ctx, st.Name); err != nil {
		return err
	}

	return s.repo.SetArchived(ctx, id, true)
}

func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return err
	}

	if !st.Archived {
		return ErrNotArchived
	}

	if err := s.ensureUniqueName(ctx, st.Name, id); err != nil {
		return err
	}

	return s.repo.SetArchived(ctx, id, false)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ServiceType, error) {
	return s.repo.GetServiceType(ctx, id)
}

func (s *Service) List(ctx context.Context, req page.Request) ([]*ServiceType, page.Info, error) {
	return s.repo.ListServiceTypes(ctx, req.Normalize())
}

func (s *Service) ListArchived(ctx context.Context) ([]*ServiceType, error) {
	return s.repo.ListArchivedServiceTypes(ctx)
}

// ListActive returns the service types new transactions may use: Active and not archived.
func (s *Service) ListActive(ctx context.Context) ([]*ServiceType, error) {
	all, err := s.repo.ListSelectable(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*ServiceType, 0, len(all))
	for _, st := range all {
		if st.Selectable() {
			active = append(active, st)
		}
	}

	return active, nil
}

// ListActiveByCategory returns the selectable service types filed under the category.
func (s *Service) ListActiveByCategory(ctx context.Context, categoryName string) ([]*ServiceType, error) {
	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*ServiceType

	for _, st := range active {
		if strings.EqualFold(st.CategoryName, categoryName) {
			matched = append(matched, st)
		}
	}

	return matched, nil
}

// Products lists the non-archived products in the service type's category.
func (s *Service) Products(ctx context.Context, id uuid.UUID) ([]*product.Product, error) {
	st, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, err
	}

	if st.CategoryName == "" {
		return nil, nil
	}

	return s.products.ListByCategory(ctx, st.CategoryName)
}

// categoryName returns the managed category's own spelling of name.
// A service type may have no category.
func (s *Service) categoryName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	c, err := s.categories.Resolve(ctx, name)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return "", fmt.Errorf("%w: unknown category %q", ErrInvalid, name)
		}

		return "", fmt.Errorf("resolving category: %w", err)
	}

	return c.Name, nil
}

func (s *Service) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindActiveByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking service type name: %w", err)
	}

	if existing.ID != self {
		return ErrDuplicateName
	}

	return nil
}

func (s *Service) ensureUnused(ctx context.Context, name string) error {
	n, err := s.repo.CountActiveTransactions(ctx, name)
	if err != nil {
		return fmt.Errorf("counting transactions for %q: %w", name, err)
	}

	if n > 0 {
		return fmt.Errorf("%w: %d transaction(s) reference %q", ErrInUse, n, name)
	}

	return nil
}
