package respond

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// NumberString accepts a JSON number or string and keeps the raw text,
// so validators see exactly what the client sent.
type NumberString string

func (n *NumberString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*n = NumberString(s)
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("expected number or string, got %s", b)
		}

		*n = NumberString(num.String())
	}

	return nil
}

func (n NumberString) String() string {
	return string(n)
}

func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}

func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// PageRequest reads page and per_page query parameters. Bad values fall back to defaults.
func PageRequest(r *http.Request) page.Request {
	q := r.URL.Query()

	p, _ := strconv.Atoi(q.Get("page"))
	pp, _ := strconv.Atoi(q.Get("per_page"))

	return page.Request{Page: p, PerPage: pp}.Normalize()
}
