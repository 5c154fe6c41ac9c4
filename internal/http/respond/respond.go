// Package respond writes the JSON envelope shared by every API handler.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/copycorner/internal/category"
	"github.com/MrJamesThe3rd/copycorner/internal/importer"
	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/product"
	"github.com/MrJamesThe3rd/copycorner/internal/report"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type envelope struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Errors  any       `json:"errors,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

// Paged is the data payload of list endpoints.
type Paged[T any] struct {
	Items      []T       `json:"items"`
	Pagination page.Info `json:"pagination"`
}

func NewPaged[T any](items []T, info page.Info) Paged[T] {
	if items == nil {
		items = []T{}
	}

	return Paged[T]{Items: items, Pagination: info}
}

// Raw writes payload as-is, for responses that do not fit the envelope.
func Raw(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func write(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Status: "ok", Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{
		Status:  "error",
		Message: message,
		Error:   &apiError{Code: status, Status: http.StatusText(status)},
	})
}

type fieldError struct {
	Field     string           `json:"field"`
	Code      transaction.Code `json:"code"`
	Available *int             `json:"available,omitempty"`
	Needed    *int             `json:"needed,omitempty"`
}

func validation(w http.ResponseWriter, ve *transaction.ValidationError) {
	fields := make([]fieldError, len(ve.Fields))

	for i, f := range ve.Fields {
		fields[i] = fieldError{Field: f.Field, Code: f.Code}
		if f.Code == transaction.CodeInsufficientStock {
			fields[i].Available = new(f.Available)
			fields[i].Needed = new(f.Needed)
		}
	}

	status := http.StatusUnprocessableEntity
	write(w, status, envelope{
		Status:  "error",
		Message: "validation failed",
		Errors:  fields,
		Error:   &apiError{Code: status, Status: http.StatusText(status)},
	})
}

// FromError maps domain errors to a status code. Unknown errors are logged and hidden.
func FromError(w http.ResponseWriter, err error) {
	var (
		ve *transaction.ValidationError
		te *transaction.TransitionError
		pe *importer.ParseError
	)

	switch {
	case errors.As(err, &ve):
		validation(w, ve)
	case errors.As(err, &te):
		Error(w, http.StatusConflict, te.Error())
	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, servicetype.ErrNotFound),
		errors.Is(err, category.ErrNotFound):
		Error(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, product.ErrDuplicateName),
		errors.Is(err, servicetype.ErrDuplicateName),
		errors.Is(err, servicetype.ErrInUse),
		errors.Is(err, servicetype.ErrNotArchived),
		errors.Is(err, category.ErrDuplicateName),
		errors.Is(err, category.ErrInUse):
		Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &pe),
		errors.Is(err, importer.ErrNoHeader),
		errors.Is(err, product.ErrInvalid),
		errors.Is(err, servicetype.ErrInvalid),
		errors.Is(err, category.ErrInvalid),
		errors.Is(err, report.ErrInvalidRange):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// rootMessage strips operation prefixes added by RemoteError.
func rootMessage(err error) string {
	var re *transaction.RemoteError
	if errors.As(err, &re) {
		return re.Err.Error()
	}

	return err.Error()
}
