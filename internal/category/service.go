package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	FindCategoryByName(ctx context.Context, name string) (*Category, error)
	// UpdateCategory saves c and refiles products and service types from oldName under c.Name.
	UpdateCategory(ctx context.Context, c *Category, oldName string) error
	// DeleteCategory fails with ErrInUse when anything is still filed under the category.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context, req page.Request) ([]*Category, page.Info, error)
	ListAllCategories(ctx context.Context) ([]*Category, error)

	// CountUsage counts products and service types, archived ones included, filed under name.
	CountUsage(ctx context.Context, name string) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name        string
	Description string
}

func (p Params) normalize() (Params, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return p, fmt.Errorf("%w: name is longer than %d characters", ErrInvalid, MaxNameLength)
	}

	return p, nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Category, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, params.Name, uuid.Nil); err != nil {
		return nil, err
	}

	c := &Category{Name: params.Name, Description: params.Description}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update renames or redescribes a category. Products and service types follow a rename.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Category, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, params.Name, id); err != nil {
		return nil, err
	}

	oldName := c.Name
	c.Name = params.Name
	c.Description = params.Description

	if err := s.repo.UpdateCategory(ctx, c, oldName); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.repo.CountUsage(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("counting usage of %q: %w", c.Name, err)
	}

	if n > 0 {
		return fmt.Errorf("%w: %d product(s) or service type(s) use %q", ErrInUse, n, c.Name)
	}

	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context, req page.Request) ([]*Category, page.Info, error) {
	return s.repo.ListCategories(ctx, req.Normalize())
}

// ListAll returns every category ordered by name.
func (s *Service) ListAll(ctx context.Context) ([]*Category, error) {
	return s.repo.ListAllCategories(ctx)
}

// Resolve finds a category by name, ignoring case and surrounding space.
func (s *Service) Resolve(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}

	return s.repo.FindCategoryByName(ctx, name)
}

func (s *Service) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return fmt.Errorf("checking category name: %w", err)
	}

	if existing.ID != self {
		return ErrDuplicateName
	}

	return nil
}
