package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatMoney renders a peso amount with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "₱" + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// fieldRule adapts a field validator to the signature huh expects.
func fieldRule(fn func(string) *transaction.FieldError) func(string) error {
	return func(s string) error {
		if fe := fn(s); fe != nil {
			return fe
		}

		return nil
	}
}

// describeError flattens validation failures into one status line.
func describeError(err error) string {
	var ve *transaction.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Sprintf("Error: %v", err)
	}

	parts := make([]string, len(ve.Fields))
	for i, fe := range ve.Fields {
		parts[i] = fe.Error()
	}

	return "Invalid: " + strings.Join(parts, "; ")
}
