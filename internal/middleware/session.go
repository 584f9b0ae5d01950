package middleware

import (
	"net/http"

	"github.com/voblako/voblako/internal/ctxkeys"
	"github.com/voblako/voblako/internal/service"
)

// Session resolves the session cookie and adds the public user to the
// request context when the token verifies. An invalid token clears the
// cookie and the request continues unauthenticated; endpoints that need
// auth decide for themselves.
func Session(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.VerifySession(cookie.Value)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
