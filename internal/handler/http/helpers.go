package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
)

// decodeJSON decodes the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// claimsFrom returns the caller identity, writing a 401 when it is missing.
func claimsFrom(w http.ResponseWriter, r *http.Request) (jwt.Claims, bool) {
	claims, err := jwt.GetClaims(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return jwt.Claims{}, false
	}
	return claims, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func queryPtr(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
