package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
	"github.com/kerjahub/hris-backend/internal/pkg/token"
)

// AuthRequired rejects requests whose bearer token is missing, invalid,
// revoked, or not an access token. Runs after jwtauth.Verifier.
func AuthRequired(tokenService token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			tok, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if tok == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if raw := jwtauth.TokenFromHeader(r); raw != "" && tokenService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := tok.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
