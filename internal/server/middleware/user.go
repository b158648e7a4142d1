package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserHeader carries the authenticated user's profile ID. It is set by the
// identity-aware proxy in front of the server.
const UserHeader = "X-User-ID"

type userKey struct{}

// User copies the UserHeader value into the request context.
func User(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if id := strings.TrimSpace(req.Header.Get(UserHeader)); id != "" {
			req = req.WithContext(context.WithValue(req.Context(), userKey{}, id))
		}
		next.ServeHTTP(w, req)
	})
}

// UserID returns the acting user's ID, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}
