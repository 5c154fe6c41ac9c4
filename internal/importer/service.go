package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

//go:generate mockgen -source=service.go -destination=catalog_mock.go -package=importer
type Catalog interface {
	ImportBatch(ctx context.Context, params []product.CreateParams) (*product.ImportResult, error)
}

type Service struct {
	parser  *Parser
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{parser: NewParser(), catalog: catalog}
}

// Import parses the sheet and hands the rows to the catalog as one batch.
func (s *Service) Import(ctx context.Context, r io.Reader) (*product.ImportResult, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return &product.ImportResult{}, nil
	}

	result, err := s.catalog.ImportBatch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("importing products: %w", err)
	}

	return result, nil
}
