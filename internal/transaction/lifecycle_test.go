package transaction_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

// memRepo keeps transactions in memory and applies stock consumption to a single counter.
type memRepo struct {
	mu    sync.Mutex
	seq   int64
	rows  map[uuid.UUID]transaction.Transaction
	stock map[uuid.UUID]int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]transaction.Transaction{}, stock: map[uuid.UUID]int{}}
}

func (r *memRepo) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	tx.ID = uuid.New()
	tx.TransactionID = transaction.FormatTransactionID(r.seq)
	tx.QueueNumber = transaction.FormatQueueNumber(r.seq)
	r.rows[tx.ID] = *tx

	return nil
}

func (r *memRepo) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.rows[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tx, nil
}

func (r *memRepo) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[tx.ID]; !ok {
		return transaction.ErrNotFound
	}

	r.rows[tx.ID] = *tx

	return nil
}

func (r *memRepo) CompleteTransaction(ctx context.Context, tx *transaction.Transaction, consume *transaction.StockConsumption) error {
	if err := r.UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	if consume != nil {
		r.mu.Lock()
		r.stock[consume.ProductID] = max(r.stock[consume.ProductID]-consume.Items, 0)
		r.mu.Unlock()
	}

	return nil
}

func (r *memRepo) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return transaction.ErrNotFound
	}

	delete(r.rows, id)

	return nil
}

func (r *memRepo) ListTransactions(context.Context, transaction.ListFilter) ([]*transaction.Transaction, page.Info, error) {
	return nil, page.Info{}, nil
}

func TestLifecycle_CreateCancelDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newMemRepo()
	products := transaction.NewMockProductCatalog(ctrl)
	types := transaction.NewMockServiceTypeCatalog(ctrl)
	svc := transaction.NewService(repo, products, types)

	bond := paperProduct(50)

	types.EXPECT().ListActive(gomock.Any()).Return(activeTypes(), nil).AnyTimes()
	products.EXPECT().Get(gomock.Any(), bond.ID).Return(bond, nil).AnyTimes()

	ctx := context.Background()

	created, err := svc.Create(ctx, transaction.Draft{
		CustomerName: "Juan Dela Cruz",
		ServiceType:  "Photocopying",
		ProductID:    &bond.ID,
		TotalPages:   "5",
		PricePerUnit: "2.00",
		Quantity:     "10",
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", created.TotalAmount.StringFixed(2))
	assert.Equal(t, transaction.StatusPending, created.Status)
	assert.Equal(t, "T-001", created.TransactionID)

	cancelled, err := svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCancelled, cancelled.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.RestoreCancelled(ctx, created.ID)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestLifecycle_CompleteConsumesStockThenArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newMemRepo()
	products := transaction.NewMockProductCatalog(ctrl)
	types := transaction.NewMockServiceTypeCatalog(ctrl)
	svc := transaction.NewService(repo, products, types)

	bond := paperProduct(50)
	repo.stock[bond.ID] = bond.StockQuantity

	types.EXPECT().ListActive(gomock.Any()).Return(activeTypes(), nil).AnyTimes()
	products.EXPECT().Get(gomock.Any(), bond.ID).Return(bond, nil).AnyTimes()

	ctx := context.Background()

	created, err := svc.Create(ctx, transaction.Draft{
		CustomerName: "Juan Dela Cruz",
		ServiceType:  "Photocopying",
		ProductID:    &bond.ID,
		TotalPages:   "2",
		PricePerUnit: "1.00",
		Quantity:     "3",
	})
	require.NoError(t, err)

	_, err = svc.Archive(ctx, created.ID)
	var te *transaction.TransitionError
	require.ErrorAs(t, err, &te, "pending transactions cannot be archived")

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, completed.Status)
	assert.Equal(t, 44, repo.stock[bond.ID])

	_, err = svc.Complete(ctx, created.ID)
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 44, repo.stock[bond.ID], "a rejected transition consumes nothing")

	archived, err := svc.Archive(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	restored, err := svc.RestoreArchived(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Nil(t, restored.ArchivedAt)
	assert.Equal(t, transaction.StatusCompleted, restored.Status)
}
