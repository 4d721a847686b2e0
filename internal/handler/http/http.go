package http

import (
	"net/http"
	"strconv"

	"github.com/kerjahub/hris-backend/internal/domain/authz"
	"github.com/kerjahub/hris-backend/internal/handler/http/middleware"
	"github.com/kerjahub/hris-backend/internal/handler/http/response"
)

// requireActor fetches the resolved actor or writes a 401. Handlers behind
// ActorResolver always find one; the guard covers misrouted registrations.
func requireActor(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return authz.Actor{}, false
	}
	return actor, true
}

func parsePagination(r *http.Request) (page int, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// queryParam returns a pointer to the query value, or nil when absent.
func queryParam(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
