package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string "userID"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// notLoggedInBody is the fixed rejection payload for every authentication
// failure. Missing header, malformed token, bad signature, expired token —
// all causes collapse into this one response so the client learns nothing
// about which check failed.
const notLoggedInBody = `{"message":"You are not logged in"}`

// RequireAuth is a middleware that enforces authentication on the blog routes.
//
// It reads the JWT from the Authorization header, validates it, and stores
// the numeric user ID in the request context. If the token is missing or
// invalid, it responds 403 with a fixed JSON body and stops the request
// chain — downstream handlers never run, so an unauthenticated request can
// never reach the database.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler. The new handler "wraps" the original:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // ... do stuff before the handler ...
//	        next.ServeHTTP(w, r)
//	    })
//	}
//
// Chi applies middlewares in a chain: req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(notLoggedInBody))
				return
			}

			// Store the user ID in context so handlers can read it
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns (0, false) if no valid token was present. On a RequireAuth-protected
// route it always returns (id, true).
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// extractUserID reads the Authorization header and validates it as a JWT.
//
// Some clients send the bare token as the header value, others use the
// conventional "Bearer <token>" form. Both are accepted: an optional Bearer
// prefix is stripped before verification.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	header := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	return tokens.Validate(tokenStr)
}
