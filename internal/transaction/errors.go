package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

// Code identifies a failed field rule.
type Code string

const (
	CodeTooShort            Code = "TooShort"
	CodeTooLong             Code = "TooLong"
	CodeNumericOnly         Code = "NumericOnly"
	CodeNoLetters           Code = "NoLetters"
	CodeSymbolsOnly         Code = "SymbolsOnly"
	CodeNotPositive         Code = "NotPositive"
	CodeProductRequired     Code = "ProductRequired"
	CodePagesRequired       Code = "PagesRequired"
	CodeInsufficientStock   Code = "InsufficientStock"
	CodeServiceTypeRequired Code = "ServiceTypeRequired"
	CodeUnknownServiceType  Code = "UnknownServiceType"
)

const (
	FieldCustomerName = "customer_name"
	FieldServiceType  = "service_type"
	FieldProduct      = "product_id"
	FieldTotalPages   = "total_pages"
	FieldPricePerUnit = "price_per_unit"
	FieldQuantity     = "quantity"
)

// FieldError is a single failed rule. Available and Needed are set for InsufficientStock.
type FieldError struct {
	Field     string
	Code      Code
	Available int
	Needed    int
}

func (e *FieldError) Error() string {
	if e.Code == CodeInsufficientStock {
		return fmt.Sprintf("%s: %s (available %d, needed %d)", e.Field, e.Code, e.Available, e.Needed)
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// ValidationError aggregates every field that failed. Nothing was persisted.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Has(code Code) bool {
	return e.Field(code) != nil
}

// Field returns the first failure with the given code.
func (e *ValidationError) Field(code Code) *FieldError {
	for _, f := range e.Fields {
		if f.Code == code {
			return f
		}
	}

	return nil
}

// TransitionError reports a lifecycle action whose precondition did not hold.
type TransitionError struct {
	ID       uuid.UUID
	Action   Action
	Status   Status
	Archived bool
}

func (e *TransitionError) Error() string {
	state := string(e.Status)
	if e.Archived {
		state += ", archived"
	}

	return fmt.Sprintf("cannot %s transaction %s in state %s", e.Action, e.ID, state)
}

// RemoteError wraps a failure from the repository or a catalog.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func remote(op string, err error) error {
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}

	return &RemoteError{Op: op, Err: err}
}
