package middleware

import (
	"context"
	"net/http"
	"strings"

	"roomstack/shared/constant"
)

const maxActorLength = 100

// Actor records who is acting on behalf of the request from the X-Actor header. The value is
// only used to stamp created_by and modified_by; requests without it act as the system.
func (a *appMiddleware) Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(constant.RequestHeaderActor))
		if actor == constant.Empty {
			next.ServeHTTP(w, r)

			return
		}

		if len(actor) > maxActorLength {
			actor = actor[:maxActorLength]
		}

		ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
