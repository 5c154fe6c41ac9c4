package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parsePrice accepts "1234.56", "1,234.56" and the European "1.234,56".
// The right-most separator is the decimal one; a lone comma is a decimal comma.
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("₱", "", "PHP", "", " ", "").Replace(strings.TrimSpace(s))

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
