package transaction

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
)

const (
	MinCustomerNameLength = 2
	MaxCustomerNameLength = 100
)

var minPrice = decimal.New(1, -2)

// ValidateCustomerName returns nil when the name is acceptable.
func ValidateCustomerName(name string) *FieldError {
	name = strings.TrimSpace(name)
	fail := func(code Code) *FieldError { return &FieldError{Field: FieldCustomerName, Code: code} }

	n := utf8.RuneCountInString(name)

	switch {
	case n < MinCustomerNameLength:
		return fail(CodeTooShort)
	case n > MaxCustomerNameLength:
		return fail(CodeTooLong)
	case all(name, unicode.IsDigit):
		return fail(CodeNumericOnly)
	case !strings.ContainsFunc(name, isAlphanumeric):
		return fail(CodeSymbolsOnly)
	case !strings.ContainsFunc(name, unicode.IsLetter):
		return fail(CodeNoLetters)
	}

	return nil
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func all(s string, fn func(rune) bool) bool {
	return !strings.ContainsFunc(s, func(r rune) bool { return !fn(r) })
}

func ValidatePrice(price string) *FieldError {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || d.LessThan(minPrice) {
		return &FieldError{Field: FieldPricePerUnit, Code: CodeNotPositive}
	}

	return nil
}

func ValidateQuantity(qty string) *FieldError {
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil || n < 1 {
		return &FieldError{Field: FieldQuantity, Code: CodeNotPositive}
	}

	return nil
}

// ValidatePages only checks the value when pages are required.
func ValidatePages(pages string, required bool) *FieldError {
	if !required {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(pages))
	if err != nil || n < 1 {
		return &FieldError{Field: FieldTotalPages, Code: CodeNotPositive}
	}

	return nil
}

// ResolveServiceCategory returns the category of the named service type.
// Only Active, non-archived service types are considered. The result is empty
// when the name is unknown or the service type has no category.
func ResolveServiceCategory(name string, types []*servicetype.ServiceType) (string, bool) {
	for _, st := range types {
		if st.Name == name && st.Selectable() {
			return st.CategoryName, true
		}
	}

	return "", false
}

// ComputeTotalAmount multiplies the price, rounded to cents as it is stored, by quantity.
// Unparseable inputs count as zero.
func ComputeTotalAmount(pricePerUnit, quantity string) decimal.Decimal {
	price, err := decimal.NewFromString(strings.TrimSpace(pricePerUnit))
	if err != nil {
		price = decimal.Zero
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		qty = decimal.Zero
	}

	return price.Round(2).Mul(qty).Round(2)
}

// ItemsNeeded is pages × quantity for paper and quantity otherwise. Missing values count as 1.
func ItemsNeeded(kind CategoryKind, pages, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}

	if kind != KindPaper {
		return quantity
	}

	if pages < 1 {
		pages = 1
	}

	return pages * quantity
}

// CheckStockAvailability fails with InsufficientStock when p cannot cover the items needed.
// A nil product always passes.
func CheckStockAvailability(p *product.Product, kind CategoryKind, pages, quantity int) *FieldError {
	if p == nil {
		return nil
	}

	needed := ItemsNeeded(kind, pages, quantity)
	if p.StockQuantity < needed {
		return &FieldError{
			Field:     FieldQuantity,
			Code:      CodeInsufficientStock,
			Available: p.StockQuantity,
			Needed:    needed,
		}
	}

	return nil
}

// ValidateDraft runs the field rules that need no catalog lookups beyond the
// resolved service category. Each field reports only its first failure.
func ValidateDraft(d Draft, category string, serviceFound bool) []*FieldError {
	d = d.Normalize()

	var fields []*FieldError

	add := func(fe *FieldError) {
		if fe != nil {
			fields = append(fields, fe)
		}
	}

	add(ValidateCustomerName(d.CustomerName))

	switch {
	case d.ServiceType == "":
		add(&FieldError{Field: FieldServiceType, Code: CodeServiceTypeRequired})
	case !serviceFound:
		add(&FieldError{Field: FieldServiceType, Code: CodeUnknownServiceType})
	}

	add(ValidatePrice(d.PricePerUnit))
	add(ValidateQuantity(d.Quantity))

	if KindOf(category) == KindPaper {
		if d.TotalPages == "" {
			add(&FieldError{Field: FieldTotalPages, Code: CodePagesRequired})
		} else {
			add(ValidatePages(d.TotalPages, true))
		}
	}

	return fields
}
