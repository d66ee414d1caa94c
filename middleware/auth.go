package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/nahid-dev/local_business_directory/backend/controllers"
	"github.com/nahid-dev/local_business_directory/backend/utils"
)

func bearerToken(r *http.Request) (string, bool) {
	tokenHeader := r.Header.Get("Authorization")
	if tokenHeader == "" {
		return "", false
	}
	tokenParts := strings.Split(tokenHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func withIdentity(ctx context.Context, claims *utils.Claims) context.Context {
	ctx = context.WithValue(ctx, controllers.UserIDKey, claims.UserID)
	return context.WithValue(ctx, controllers.RoleKey, claims.Role)
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			log.Printf("Missing or malformed Authorization header from request %s %s", r.Method, r.URL)
			http.Error(w, "Missing or malformed Authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Invalid or expired token: %v", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

// RequireRole gates a route on the authenticated caller's role. Runs after
// AuthMiddleware, which put the role into the context.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(controllers.RoleKey).(string)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Printf("Access denied for role %q on %s %s", role, r.Method, r.URL)
			http.Error(w, "Access denied", http.StatusForbidden)
		})
	}
}

// OptionalAuth attaches the caller identity when a valid bearer token is
// present and lets the request through anonymously otherwise. Public listing
// reads use it so bookmark flags appear for signed-in users.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := utils.ValidateJWT(token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}
