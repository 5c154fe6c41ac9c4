package transaction

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// UpdateTransaction replaces every mutable field, status and archive flags included.
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	// CompleteTransaction persists tx and applies consume (when non-nil) atomically.
	CompleteTransaction(ctx context.Context, tx *Transaction, consume *StockConsumption) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, page.Info, error)
}

type ProductCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
	FindByName(ctx context.Context, name string) (*product.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*product.Product, error)
}

type ServiceTypeCatalog interface {
	ListActive(ctx context.Context) ([]*servicetype.ServiceType, error)
}

// StockConsumption is the stock decrement applied when a transaction completes.
type StockConsumption struct {
	ProductID uuid.UUID
	Items     int
}

type ListFilter struct {
	Status   *Status
	Archived bool
	Search   string
	Page     page.Request
}

type Service struct {
	repo         Repository
	products     ProductCatalog
	serviceTypes ServiceTypeCatalog
	now          func() time.Time
	recorder     Recorder
}

func NewService(repo Repository, products ProductCatalog, serviceTypes ServiceTypeCatalog, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		products:     products,
		serviceTypes: serviceTypes,
		now:          time.Now,
		recorder:     nopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the draft, including stock, and stores a Pending transaction.
func (s *Service) Create(ctx context.Context, draft Draft) (tx *Transaction, err error) {
	defer func() { s.record(ActionCreate, err) }()

	d := draft.Normalize()

	r, err := s.prepare(ctx, d, true)
	if err != nil {
		return nil, err
	}

	tx = &Transaction{
		Status: StatusPending,
		Date:   s.today(),
	}
	apply(tx, d, r)

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, remote("creating transaction", err)
	}

	logTransition(tx, ActionCreate)

	return tx, nil
}

// Update replaces the editable fields. Status is left as is and stock is not re-checked.
func (s *Service) Update(ctx context.Context, id uuid.UUID, draft Draft) (tx *Transaction, err error) {
	defer func() { s.record(ActionUpdate, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	d := draft.Normalize()

	r, err := s.prepare(ctx, d, false)
	if err != nil {
		return nil, err
	}

	next := current.clone()
	apply(next, d, r)

	if err := s.repo.UpdateTransaction(ctx, next); err != nil {
		return nil, remote("updating transaction", err)
	}

	logTransition(next, ActionUpdate)

	return next, nil
}

// Complete moves a Pending transaction to Completed, dates it today and consumes stock.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (tx *Transaction, err error) {
	defer func() { s.record(ActionComplete, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != StatusPending || current.Archived {
		return nil, rejected(current, ActionComplete)
	}

	category, err := s.ResolveServiceCategory(ctx, current.ServiceType)
	if err != nil {
		return nil, err
	}

	p, fe, err := s.resolveProduct(ctx, category, current.ProductID, current.Product.Label)
	if err != nil {
		return nil, err
	}

	if fe != nil {
		return nil, &ValidationError{Fields: []*FieldError{fe}}
	}

	next := current.clone()
	next.Status = StatusCompleted
	next.Date = s.today()

	var consume *StockConsumption

	if p != nil {
		next.ProductID = new(p.ID)
		next.Product.Label = p.Name
		consume = &StockConsumption{ProductID: p.ID, Items: next.ItemsNeeded()}
	}

	if err := s.repo.CompleteTransaction(ctx, next, consume); err != nil {
		return nil, remote("completing transaction", err)
	}

	logTransition(next, ActionComplete)

	return next, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, id, ActionCancel,
		func(t *Transaction) bool { return t.Status == StatusPending && !t.Archived },
		func(t *Transaction) { t.Status = StatusCancelled },
	)
}

func (s *Service) RestoreCancelled(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, id, ActionRestore,
		func(t *Transaction) bool { return t.Status == StatusCancelled },
		func(t *Transaction) { t.Status = StatusPending },
	)
}

func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, id, ActionArchive,
		func(t *Transaction) bool { return t.Status == StatusCompleted && !t.Archived },
		func(t *Transaction) {
			t.Archived = true
			t.ArchivedAt = new(s.now())
		},
	)
}

func (s *Service) RestoreArchived(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, id, ActionUnarchive,
		func(t *Transaction) bool { return t.Archived },
		func(t *Transaction) {
			t.Archived = false
			t.ArchivedAt = nil
		},
	)
}

// Delete permanently removes a Cancelled transaction.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer func() { s.record(ActionDelete, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if current.Status != StatusCancelled {
		return rejected(current, ActionDelete)
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return remote("deleting transaction", err)
	}

	logTransition(current, ActionDelete)

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.load(ctx, id)
}

// List returns non-archived transactions, optionally narrowed to one status.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, page.Info, error) {
	filter.Archived = false
	filter.Page = filter.Page.Normalize()

	txs, info, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, page.Info{}, remote("listing transactions", err)
	}

	return txs, info, nil
}

func (s *Service) ListArchived(ctx context.Context, filter ListFilter) ([]*Transaction, page.Info, error) {
	filter.Archived = true
	filter.Status = nil
	filter.Page = filter.Page.Normalize()

	txs, info, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, page.Info{}, remote("listing archived transactions", err)
	}

	return txs, info, nil
}

// CheckStock reports whether the draft's product can cover it. It never persists and
// passes when no product is selected.
func (s *Service) CheckStock(ctx context.Context, draft Draft) (*FieldError, error) {
	d := draft.Normalize()

	category, err := s.ResolveServiceCategory(ctx, d.ServiceType)
	if err != nil {
		return nil, err
	}

	p, fe, err := s.lookupProduct(ctx, d.ProductID, d.ProductName)
	if err != nil || fe != nil {
		return nil, err
	}

	if p != nil && !productFits(p, category) {
		return nil, nil
	}

	return CheckStockAvailability(p, KindOf(category), d.pages(), d.quantity()), nil
}

// ResolveServiceCategory looks the name up among the selectable service types.
func (s *Service) ResolveServiceCategory(ctx context.Context, serviceType string) (string, error) {
	types, err := s.serviceTypes.ListActive(ctx)
	if err != nil {
		return "", remote("listing service types", err)
	}

	category, _ := ResolveServiceCategory(serviceType, types)

	return category, nil
}

type resolved struct {
	category string
	product  *product.Product
}

// prepare validates d against the catalogs. Nothing is written.
func (s *Service) prepare(ctx context.Context, d Draft, checkStock bool) (*resolved, error) {
	types, err := s.serviceTypes.ListActive(ctx)
	if err != nil {
		return nil, remote("listing service types", err)
	}

	category, found := ResolveServiceCategory(d.ServiceType, types)
	fields := ValidateDraft(d, category, found)

	p, fe, err := s.resolveProduct(ctx, category, d.ProductID, d.ProductName)
	if err != nil {
		return nil, err
	}

	if fe != nil {
		fields = append(fields, fe)
	}

	if checkStock && len(fields) == 0 {
		if fe := CheckStockAvailability(p, KindOf(category), d.pages(), d.quantity()); fe != nil {
			fields = append(fields, fe)
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &resolved{category: category, product: p}, nil
}

// resolveProduct finds the selected product and enforces that one is chosen
// whenever the category has products. An archived product, or one from another
// category, counts as not chosen.
func (s *Service) resolveProduct(ctx context.Context, category string, id *uuid.UUID, name string) (*product.Product, *FieldError, error) {
	p, fe, err := s.lookupProduct(ctx, id, name)
	if err != nil || fe != nil {
		return nil, fe, err
	}

	if p != nil && !productFits(p, category) {
		return nil, &FieldError{Field: FieldProduct, Code: CodeProductRequired}, nil
	}

	if p != nil || category == "" {
		return p, nil, nil
	}

	inCategory, err := s.products.ListByCategory(ctx, category)
	if err != nil {
		return nil, nil, remote("listing products", err)
	}

	if len(inCategory) > 0 {
		return nil, &FieldError{Field: FieldProduct, Code: CodeProductRequired}, nil
	}

	return nil, nil, nil
}

// lookupProduct prefers the id and falls back to a name lookup. An unknown id is a
// ProductRequired failure; an unknown name just means no product.
func (s *Service) lookupProduct(ctx context.Context, id *uuid.UUID, name string) (*product.Product, *FieldError, error) {
	if id != nil {
		p, err := s.products.Get(ctx, *id)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return nil, &FieldError{Field: FieldProduct, Code: CodeProductRequired}, nil
			}

			return nil, nil, remote("getting product", err)
		}

		return p, nil, nil
	}

	if name == "" {
		return nil, nil, nil
	}

	p, err := s.products.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, nil, nil
		}

		return nil, nil, remote("finding product", err)
	}

	return p, nil, nil
}

func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	action Action,
	allowed func(*Transaction) bool,
	mutate func(*Transaction),
) (tx *Transaction, err error) {
	defer func() { s.record(action, err) }()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !allowed(current) {
		return nil, rejected(current, action)
	}

	next := current.clone()
	mutate(next)

	if err := s.repo.UpdateTransaction(ctx, next); err != nil {
		return nil, remote("updating transaction", err)
	}

	logTransition(next, action)

	return next, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, remote("getting transaction", err)
	}

	return tx, nil
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) record(action Action, err error) {
	var (
		ve *ValidationError
		te *TransitionError
	)

	switch {
	case err == nil:
		s.recorder.RecordTransition(action, ResultOK)
	case errors.As(err, &ve):
		s.recorder.RecordTransition(action, ResultInvalid)
	case errors.As(err, &te):
		s.recorder.RecordTransition(action, ResultRejected)
	default:
		s.recorder.RecordTransition(action, ResultError)
	}
}

func apply(tx *Transaction, d Draft, r *resolved) {
	kind := KindOf(r.category)

	tx.CustomerName = d.CustomerName
	tx.ServiceType = d.ServiceType
	tx.Product = ProductLabel{Category: kind, Label: d.ProductName}
	tx.ProductID = nil
	tx.TotalPages = 0
	tx.Quantity = d.quantity()
	tx.PricePerUnit = d.price()
	tx.TotalAmount = tx.PricePerUnit.Mul(decimal.NewFromInt(int64(tx.Quantity))).Round(2)

	if r.product != nil {
		tx.ProductID = new(r.product.ID)
		tx.Product.Label = r.product.Name
	}

	if kind == KindPaper {
		tx.TotalPages = d.pages()
	}
}

func productFits(p *product.Product, category string) bool {
	return !p.Archived && strings.EqualFold(p.CategoryName, category)
}

func rejected(t *Transaction, action Action) error {
	return &TransitionError{ID: t.ID, Action: action, Status: t.Status, Archived: t.Archived}
}

func logTransition(t *Transaction, action Action) {
	slog.Info("transaction transition", "id", t.ID, "action", action, "status", t.Status, "archived", t.Archived)
}
