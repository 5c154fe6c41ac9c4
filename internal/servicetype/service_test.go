package servicetype_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    servicetype.Params
		setupMock func(m *servicetype.MockRepository, c *servicetype.MockCategoryResolver)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "DefaultsToActive",
			params: servicetype.Params{Name: "Printing", CategoryName: "paper"},
			setupMock: func(m *servicetype.MockRepository, c *servicetype.MockCategoryResolver) {
				m.EXPECT().FindActiveByName(gomock.Any(), "Printing").Return(nil, servicetype.ErrNotFound)
				c.EXPECT().Resolve(gomock.Any(), "paper").Return(&category.Category{Name: "Paper"}, nil)
				m.EXPECT().
					CreateServiceType(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, st *servicetype.ServiceType) error {
						assert.Equal(t, servicetype.StatusActive, st.Status)
						assert.Equal(t, "Paper", st.CategoryName)
						st.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "WithoutCategory",
			params: servicetype.Params{Name: "Layout"},
			setupMock: func(m *servicetype.MockRepository, _ *servicetype.MockCategoryResolver) {
				m.EXPECT().FindActiveByName(gomock.Any(), "Layout").Return(nil, servicetype.ErrNotFound)
				m.EXPECT().
					CreateServiceType(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, st *servicetype.ServiceType) error {
						st.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "UnknownCategory",
			params: servicetype.Params{Name: "Mug Printing", CategoryName: "Ceramics"},
			setupMock: func(m *servicetype.MockRepository, c *servicetype.MockCategoryResolver) {
				m.EXPECT().FindActiveByName(gomock.Any(), "Mug Printing").Return(nil, servicetype.ErrNotFound)
				c.EXPECT().Resolve(gomock.Any(), "Ceramics").Return(nil, category.ErrNotFound)
			},
			wantErr: servicetype.ErrInvalid,
		},
		{
			name:    "EmptyName",
			params:  servicetype.Params{Name: " "},
			wantErr: servicetype.ErrInvalid,
		},
		{
			name:    "UnknownStatus",
			params:  servicetype.Params{Name: "Printing", Status: "Paused"},
			wantErr: servicetype.ErrInvalid,
		},
		{
			name:   "DuplicateName",
			params: servicetype.Params{Name: "Printing"},
			setupMock: func(m *servicetype.MockRepository, _ *servicetype.MockCategoryResolver) {
				m.EXPECT().FindActiveByName(gomock.Any(), "Printing").Return(&servicetype.ServiceType{ID: uuid.New()}, nil)
			},
			wantErr: servicetype.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := servicetype.NewMockRepository(ctrl)
			categories := servicetype.NewMockCategoryResolver(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, categories)
			}

			got, err := servicetype.NewService(repo, nil, categories).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update_RenameInUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Printing"}, nil)
	repo.EXPECT().CountActiveTransactions(gomock.Any(), "Printing").Return(2, nil)

	_, err := servicetype.NewService(repo, nil, nil).Update(context.Background(), id, servicetype.Params{Name: "Photocopy"})
	assert.ErrorIs(t, err, servicetype.ErrInUse)
}

func TestService_Update_SameNameSkipsUsageCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	id := uuid.New()
	current := &servicetype.ServiceType{ID: id, Name: "Printing", CategoryName: "Paper", Status: servicetype.StatusActive}

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(current, nil)
	repo.EXPECT().FindActiveByName(gomock.Any(), "Printing").Return(current, nil)
	repo.EXPECT().UpdateServiceType(gomock.Any(), gomock.Any()).Return(nil)

	got, err := servicetype.NewService(repo, nil, nil).Update(context.Background(), id, servicetype.Params{
		Name:   "Printing",
		Status: servicetype.StatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, servicetype.StatusInactive, got.Status)
}

func TestService_Archive(t *testing.T) {
	tests := []struct {
		name      string
		current   *servicetype.ServiceType
		setupMock func(m *servicetype.MockRepository, id uuid.UUID)
		wantErr   error
	}{
		{
			name:    "Unused",
			current: &servicetype.ServiceType{Name: "Lamination"},
			setupMock: func(m *servicetype.MockRepository, id uuid.UUID) {
				m.EXPECT().CountActiveTransactions(gomock.Any(), "Lamination").Return(0, nil)
				m.EXPECT().SetArchived(gomock.Any(), id, true).Return(nil)
			},
		},
		{
			name:    "InUse",
			current: &servicetype.ServiceType{Name: "Lamination"},
			setupMock: func(m *servicetype.MockRepository, _ uuid.UUID) {
				m.EXPECT().CountActiveTransactions(gomock.Any(), "Lamination").Return(1, nil)
			},
			wantErr: servicetype.ErrInUse,
		},
		{
			name:    "AlreadyArchived",
			current: &servicetype.ServiceType{Name: "Lamination", Archived: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := servicetype.NewMockRepository(ctrl)
			id := uuid.New()
			tt.current.ID = id

			repo.EXPECT().GetServiceType(gomock.Any(), id).Return(tt.current, nil)

			if tt.setupMock != nil {
				tt.setupMock(repo, id)
			}

			err := servicetype.NewService(repo, nil, nil).Archive(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	svc := servicetype.NewService(repo, nil, nil)
	id := uuid.New()

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Binding"}, nil)
	assert.ErrorIs(t, svc.Restore(context.Background(), id), servicetype.ErrNotArchived)

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Binding", Archived: true}, nil)
	repo.EXPECT().FindActiveByName(gomock.Any(), "Binding").Return(&servicetype.ServiceType{ID: uuid.New()}, nil)
	assert.ErrorIs(t, svc.Restore(context.Background(), id), servicetype.ErrDuplicateName)

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, Name: "Binding", Archived: true}, nil)
	repo.EXPECT().FindActiveByName(gomock.Any(), "Binding").Return(nil, servicetype.ErrNotFound)
	repo.EXPECT().SetArchived(gomock.Any(), id, false).Return(nil)
	assert.NoError(t, svc.Restore(context.Background(), id))
}

func TestService_ListActive_FiltersInactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	repo.EXPECT().ListSelectable(gomock.Any()).Return([]*servicetype.ServiceType{
		{Name: "Printing", Status: servicetype.StatusActive},
		{Name: "Scanning", Status: servicetype.StatusInactive},
		{Name: "Binding", Status: servicetype.StatusActive, Archived: true},
	}, nil)

	got, err := servicetype.NewService(repo, nil, nil).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Printing", got[0].Name)
	assert.Equal(t, "ST-012", servicetype.FormatCode(12))
}

func TestService_Products(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	products := servicetype.NewMockProductLister(ctrl)
	svc := servicetype.NewService(repo, products, nil)

	id := uuid.New()
	want := []*product.Product{{Name: "A4 Bond", CategoryName: "Paper"}}

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id, CategoryName: "Paper"}, nil)
	products.EXPECT().ListByCategory(gomock.Any(), "Paper").Return(want, nil)

	got, err := svc.Products(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(&servicetype.ServiceType{ID: id}, nil)

	got, err = svc.Products(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Update_UnknownCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	categories := servicetype.NewMockCategoryResolver(ctrl)
	id := uuid.New()
	current := &servicetype.ServiceType{ID: id, Name: "Printing", Status: servicetype.StatusActive}

	repo.EXPECT().GetServiceType(gomock.Any(), id).Return(current, nil)
	repo.EXPECT().FindActiveByName(gomock.Any(), "Printing").Return(current, nil)
	categories.EXPECT().Resolve(gomock.Any(), "Vinyl").Return(nil, category.ErrNotFound)

	_, err := servicetype.NewService(repo, nil, categories).Update(context.Background(), id, servicetype.Params{
		Name:         "Printing",
		CategoryName: "Vinyl",
	})
	assert.ErrorIs(t, err, servicetype.ErrInvalid)
}

func TestService_ListActiveByCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := servicetype.NewMockRepository(ctrl)
	repo.EXPECT().ListSelectable(gomock.Any()).Return([]*servicetype.ServiceType{
		{Name: "Photocopying", CategoryName: "Paper", Status: servicetype.StatusActive},
		{Name: "Printing", CategoryName: "paper", Status: servicetype.StatusActive},
		{Name: "Scanning", CategoryName: "Paper", Status: servicetype.StatusInactive},
		{Name: "Shirt Printing", CategoryName: "T-shirt", Status: servicetype.StatusActive},
	}, nil)

	got, err := servicetype.NewService(repo, nil, nil).ListActiveByCategory(context.Background(), "Paper")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Photocopying", got[0].Name)
	assert.Equal(t, "Printing", got[1].Name)
}
