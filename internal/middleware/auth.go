package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/auth"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/models"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (authz.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(authz.Principal)
	return p, ok
}

// CredentialVerifier checks a username/password pair against the user
// directory. Satisfied by services.UserService.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (models.User, error)
}

type AuthMiddleware struct {
	Verifier CredentialVerifier
	Tokens   *auth.TokenManager
}

func NewAuthMiddleware(v CredentialVerifier, tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{Verifier: v, Tokens: tm}
}

// Require authenticates via Basic credentials or a Bearer token from /login
// and binds the principal to the request context. Unauthenticated requests
// get a Basic challenge plus a 401 body.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := m.principal(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="adboard"`)
			httpx.WriteAppError(w, apperr.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (m *AuthMiddleware) principal(r *http.Request) (authz.Principal, bool) {
	if username, password, ok := r.BasicAuth(); ok {
		u, err := m.Verifier.VerifyCredentials(r.Context(), username, password)
		if err != nil {
			return authz.Principal{}, false
		}
		return authz.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}, true
	}

	ah := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		claims, err := m.Tokens.Parse(strings.TrimSpace(ah[len("Bearer "):]))
		if err != nil {
			return authz.Principal{}, false
		}
		uid, err := claims.UserID()
		if err != nil {
			return authz.Principal{}, false
		}
		return authz.Principal{UserID: uid, Username: claims.Username, Role: models.Role(claims.Role)}, true
	}
	return authz.Principal{}, false
}
