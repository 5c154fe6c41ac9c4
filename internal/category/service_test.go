package category_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    category.Params
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: category.Params{Name: " Ink ", Description: " Printer ink "},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().FindCategoryByName(gomock.Any(), "Ink").Return(nil, category.ErrNotFound)
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						assert.Equal(t, "Ink", c.Name)
						assert.Equal(t, "Printer ink", c.Description)
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  category.Params{Name: "  "},
			wantErr: category.ErrInvalid,
		},
		{
			name:    "NameTooLong",
			params:  category.Params{Name: strings.Repeat("x", category.MaxNameLength+1)},
			wantErr: category.ErrInvalid,
		},
		{
			name:   "DuplicateIgnoringCase",
			params: category.Params{Name: "paper"},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().FindCategoryByName(gomock.Any(), "paper").Return(&category.Category{ID: uuid.New(), Name: "Paper"}, nil)
			},
			wantErr: category.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := category.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update_Rename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Shirts"}, nil)
	repo.EXPECT().FindCategoryByName(gomock.Any(), "T-shirt").Return(nil, category.ErrNotFound)
	repo.EXPECT().UpdateCategory(gomock.Any(), gomock.Any(), "Shirts").
		DoAndReturn(func(_ context.Context, c *category.Category, _ string) error {
			assert.Equal(t, "T-shirt", c.Name)
			return nil
		})

	got, err := category.NewService(repo).Update(context.Background(), id, category.Params{Name: "T-shirt"})
	require.NoError(t, err)
	assert.Equal(t, "T-shirt", got.Name)
}

func TestService_Update_SameNameOtherCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	id := uuid.New()
	current := &category.Category{ID: id, Name: "paper"}

	repo.EXPECT().GetCategory(gomock.Any(), id).Return(current, nil)
	repo.EXPECT().FindCategoryByName(gomock.Any(), "Paper").Return(current, nil)
	repo.EXPECT().UpdateCategory(gomock.Any(), gomock.Any(), "paper").Return(nil)

	_, err := category.NewService(repo).Update(context.Background(), id, category.Params{Name: "Paper"})
	require.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Unused",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Ink"}, nil)
				m.EXPECT().CountUsage(gomock.Any(), "Ink").Return(0, nil)
				m.EXPECT().DeleteCategory(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "InUse",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, Name: "Paper"}, nil)
				m.EXPECT().CountUsage(gomock.Any(), "Paper").Return(3, nil)
			},
			wantErr: category.ErrInUse,
		},
		{
			name: "NotFound",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			err := category.NewService(repo).Delete(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	svc := category.NewService(repo)

	repo.EXPECT().FindCategoryByName(gomock.Any(), "paper").Return(&category.Category{Name: "Paper"}, nil)

	got, err := svc.Resolve(context.Background(), "  paper ")
	require.NoError(t, err)
	assert.Equal(t, "Paper", got.Name)

	_, err = svc.Resolve(context.Background(), " ")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestService_List_NormalizesPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)

	repo.EXPECT().ListCategories(gomock.Any(), page.Request{}.Normalize()).Return(nil, page.Info{}, errors.New("db down"))

	_, _, err := category.NewService(repo).List(context.Background(), page.Request{})
	assert.Error(t, err)
}
