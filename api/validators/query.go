package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/ordena-app/ordena-backend/pkg/errors"
)

// ParseQueryTimeRange reads the optional from/to query parameters as RFC3339
// timestamps. An omitted parameter comes back as the zero time, meaning
// unbounded on that side; range semantics (from inclusive, to exclusive) are
// enforced by the services, not here.
func ParseQueryTimeRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseQueryTime(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseQueryTime(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseQueryTime(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be an RFC3339 timestamp").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
