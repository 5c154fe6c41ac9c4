// Package importer reads product sheets exported from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/copycorner/internal/encoding"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
)

var ErrNoHeader = errors.New("no header row with name, category and stock columns")

// ParseError is a row that could not be read. Line is 1-based.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// delimiters are tried in order; the first one that yields a header wins.
var delimiters = []rune{';', ','}

// Parser reads product CSV files. The delimiter and the header row are detected.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// record is a CSV row with its 1-based line number in the file.
type record struct {
	line   int
	fields []string
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	decoded, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	slog.Debug("parsing product sheet", "charset", decoded.Charset, "bytes", len(data))

	for _, delim := range delimiters {
		records, err := readRecords(string(data), delim)
		if err != nil {
			continue
		}

		for i, rec := range records {
			cols, ok := matchHeader(rec.fields)
			if !ok {
				continue
			}

			return parseRows(cols, records[i+1:])
		}
	}

	return nil, ErrNoHeader
}

func readRecords(data string, delim rune) ([]record, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

func parseRows(cols colIndex, records []record) ([]product.CreateParams, error) {
	var params []product.CreateParams

	for _, rec := range records {
		if blank(rec.fields) {
			continue
		}

		p, err := parseRow(cols, rec.fields)
		if err != nil {
			return nil, &ParseError{Line: rec.line, Err: err}
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(cols colIndex, row []string) (product.CreateParams, error) {
	p := product.CreateParams{
		Name:         cols.value(row, colName),
		CategoryName: cols.value(row, colCategory),
	}

	if p.Name == "" {
		return p, errors.New("missing product name")
	}

	stock, err := strconv.Atoi(cols.value(row, colStock))
	if err != nil || stock < 0 {
		return p, fmt.Errorf("invalid stock %q", cols.value(row, colStock))
	}

	p.StockQuantity = stock

	if s := cols.value(row, colMinimum); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid minimum stock %q", s)
		}

		p.MinimumStock = new(n)
	}

	if s := cols.value(row, colPrice); s != "" {
		price, err := parsePrice(s)
		if err != nil || price.IsNegative() {
			return p, fmt.Errorf("invalid unit price %q", s)
		}

		p.UnitPrice = price.Round(2)
	}

	return p, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
