package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/copycorner/internal/database"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "juan", want: "%juan%"},
		{in: "50%", want: `%50\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\tmp`, want: `%c:\\tmp%`},
		{in: "", want: "%%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, database.ContainsPattern(tt.in), tt.in)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, database.IsUniqueViolation(unique))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("inserting: %w", unique)))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
}
