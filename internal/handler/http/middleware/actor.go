package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/domain/employee"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
)

type actorKey struct{}

// ActorResolver swaps the verified identity id for a database-backed actor
// on every request. No tenant or role ever comes from the token itself; a
// removed employee loses access on their next request, not at token
// expiry.
func ActorResolver(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			identityID, ok := claims["identity_id"].(string)
			if !ok || identityID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, err := authService.ResolveActor(r.Context(), identityID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if actor.Status != string(employee.StatusActive) {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromContext returns the actor placed by ActorResolver.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(authz.Actor)
	return actor, ok
}

// IdentityIDFromContext returns the verified identity id claim.
func IdentityIDFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	id, _ := claims["identity_id"].(string)
	return id
}
