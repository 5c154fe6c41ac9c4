package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category name already exists")
	ErrInUse         = errors.New("category is used by products or service types")
	ErrInvalid       = errors.New("invalid category")
)

const MaxNameLength = 50

// Category groups products and the service types that sell them.
// Names are unique regardless of case.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
