package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
)

// IDParam extracts a positive integer route parameter.
func IDParam(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "route parameter must be a positive id").
			WithDetails(map[string]any{"param": key})
	}
	return value, nil
}

// IDListQuery parses a comma-separated list of positive ids from a query
// parameter.
func IDListQuery(r *http.Request, key string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || value <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a comma-separated list of ids").
				WithDetails(map[string]any{"param": key})
		}
		ids = append(ids, value)
	}
	return ids, nil
}
