package kit

import (
	"context"
	"net/http"
	"strings"
)

// Identity is the caller as asserted by the gateway. Internal services
// trust the X-User-Id / X-User-Role headers the gateway injects after
// validating the JWT; they never see the token itself.
type Identity struct {
	UserID string
	Role   string
}

type ctxKey string

const identityKey ctxKey = "identity"

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireIdentity rejects requests missing the injected user headers.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if uid == "" {
			WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}

		id := Identity{
			UserID: uid,
			Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
