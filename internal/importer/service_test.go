package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalog := importer.NewMockCatalog(ctrl)
	svc := importer.NewService(catalog)

	want := &product.ImportResult{Imported: []*product.Product{{Name: "A4 Bond"}}}
	catalog.EXPECT().ImportBatch(gomock.Any(), gomock.Len(1)).Return(want, nil)

	got, err := svc.Import(context.Background(), strings.NewReader("name,category,stock\nA4 Bond,Paper,10\n"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_Import_HeaderOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	got, err := importer.NewService(importer.NewMockCatalog(ctrl)).Import(context.Background(), strings.NewReader("name,category,stock\n"))
	require.NoError(t, err)
	assert.Empty(t, got.Imported)
}

func TestService_Import_CatalogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalog := importer.NewMockCatalog(ctrl)
	catalog.EXPECT().ImportBatch(gomock.Any(), gomock.Any()).Return(nil, product.ErrDuplicateName)

	_, err := importer.NewService(catalog).Import(context.Background(), strings.NewReader("name,category,stock\nA,B,1\n"))
	assert.True(t, errors.Is(err, product.ErrDuplicateName))
}
