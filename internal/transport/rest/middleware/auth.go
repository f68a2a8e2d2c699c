package middleware

import (
	"context"
	"net/http"
	"strings"

	"sarvekshan/internal/service"
)

type contextKey string

const (
	InspectorIDKey   contextKey = "inspectorId"
	InspectorNameKey contextKey = "inspectorName"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireInspector validates the inspector JWT from the Authorization header
// or the token query param
func (m *AuthMiddleware) RequireInspector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, InspectorIDKey, claims.InspectorID)
		ctx = context.WithValue(ctx, InspectorNameKey, claims.Name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetInspectorID extracts the inspector ID from context
func GetInspectorID(ctx context.Context) string {
	if v := ctx.Value(InspectorIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetInspectorName extracts the inspector display name from context
func GetInspectorName(ctx context.Context) string {
	if v := ctx.Value(InspectorNameKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
