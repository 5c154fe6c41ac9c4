package importer

import "strings"

// column is one logical field of the product sheet and the header names accepted for it.
type column struct {
	key      string
	aliases  []string
	required bool
}

const (
	colName     = "name"
	colCategory = "category"
	colStock    = "stock"
	colMinimum  = "minimum_stock"
	colPrice    = "unit_price"
)

var columns = []column{
	{key: colName, aliases: []string{"name", "product_name", "product"}, required: true},
	{key: colCategory, aliases: []string{"category", "category_name"}, required: true},
	{key: colStock, aliases: []string{"stock", "stock_quantity", "quantity", "qty"}, required: true},
	{key: colMinimum, aliases: []string{"minimum_stock", "min_stock", "minimum"}},
	{key: colPrice, aliases: []string{"unit_price", "price"}},
}

// colIndex maps column keys to their position in a row.
type colIndex map[string]int

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(s)
}

// matchHeader returns the column positions when row carries every required column.
func matchHeader(row []string) (colIndex, bool) {
	byAlias := make(map[string]int, len(row))

	for i, cell := range row {
		if name := normalizeHeader(cell); name != "" {
			if _, dup := byAlias[name]; !dup {
				byAlias[name] = i
			}
		}
	}

	cols := make(colIndex, len(columns))

	for _, c := range columns {
		for _, alias := range c.aliases {
			if i, ok := byAlias[alias]; ok {
				cols[c.key] = i
				break
			}
		}

		if _, ok := cols[c.key]; !ok && c.required {
			return nil, false
		}
	}

	return cols, true
}

func (c colIndex) value(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
