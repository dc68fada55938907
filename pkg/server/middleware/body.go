package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/de-tools/dashboard/pkg/handlers/respond"
	"github.com/de-tools/dashboard/pkg/models/domain"
)

// RequireBody rejects JSON bodies in which any of fields is absent, null or a
// blank string. The body is restored for the next handler.
func RequireBody(fields ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				respond.Fail(w, req, http.StatusBadRequest, "Invalid request body")
				return
			}
			_ = req.Body.Close()

			var body map[string]interface{}
			if len(bytes.TrimSpace(raw)) > 0 {
				if err := json.Unmarshal(raw, &body); err != nil {
					respond.Fail(w, req, http.StatusBadRequest, "Invalid request body")
					return
				}
			}

			var missing []string
			for _, field := range fields {
				if isBlank(body[field]) {
					missing = append(missing, field)
				}
			}
			if len(missing) > 0 {
				respond.Error(w, req, &domain.ValidationError{Fields: missing})
				return
			}

			req.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, req)
		})
	}
}

func isBlank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}
