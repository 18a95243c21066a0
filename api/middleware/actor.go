package middleware

import (
	"net/http"

	"github.com/hotelworks/hotelstock-backend/pkg/enums"
	"github.com/hotelworks/hotelstock-backend/pkg/logger"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Actor propagates staff identity from the gateway headers into the request
// context. Authentication happens upstream; these headers arrive already
// verified.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if actorID := r.Header.Get(actorIDHeader); actorID != "" {
				ctx = WithActorID(ctx, actorID)
				if logg != nil {
					ctx = logg.WithActorID(ctx, actorID)
				}
			}
			if role := r.Header.Get(actorRoleHeader); role != "" {
				ctx = WithActorRole(ctx, enums.ActorRole(role))
				if logg != nil {
					ctx = logg.WithActorRole(ctx, role)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
