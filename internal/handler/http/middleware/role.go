package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(user.RoleAdmin, user.ErrAdminAccessRequired)(next)
}

// RequireEmployee requires the employee role and an employee id in the token
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.GetClaims(r.Context())
		if err != nil || claims.Role != user.RoleEmployee || claims.EmployeeID == "" {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireRole(role user.Role, denied error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.GetClaims(r.Context())
			if err != nil {
				response.HandleError(w, denied)
				return
			}

			if claims.Role != role {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
