package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Rejects SSE tokens and access tokens missing identity claims.
			if _, err := jwt.GetClaims(r.Context()); err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
