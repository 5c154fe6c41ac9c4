package servicetype

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("service type not found")
	ErrDuplicateName = errors.New("service type name already exists")
	ErrInUse         = errors.New("service type is used by active transactions")
	ErrNotArchived   = errors.New("service type is not archived")
	ErrInvalid       = errors.New("invalid service type")
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// ServiceType is a named offering linked to a product category.
type ServiceType struct {
	ID           uuid.UUID
	Code         string
	Name         string
	CategoryName string
	Status       Status
	Archived     bool
	ArchivedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Selectable reports whether new transactions may reference the service type.
func (st *ServiceType) Selectable() bool {
	return st.Status == StatusActive && !st.Archived
}

func FormatCode(seq int64) string {
	return fmt.Sprintf("ST-%03d", seq)
}
