package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// ActorKey is the context key for the acting admin identity.
const ActorKey contextKey = "actor"

// AnonymousActor is recorded when no identity can be derived from the request.
const AnonymousActor = "anonymous"

// Actor creates middleware that derives the acting admin identity for audit
// attribution. A bearer token subject wins when a signing secret is
// configured; otherwise the X-Actor-Id header is trusted. Requests without
// either proceed as anonymous.
func Actor(jwtSecret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := AnonymousActor

			if jwtSecret != "" {
				if sub, ok := subjectFromBearer(r, jwtSecret, issuer); ok {
					actor = sub
				}
			}
			if actor == AnonymousActor {
				if id := strings.TrimSpace(r.Header.Get("X-Actor-Id")); id != "" {
					actor = id
				}
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func subjectFromBearer(r *http.Request, secret, issuer string) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// GetActor extracts the acting admin identity from the request context.
func GetActor(ctx context.Context) string {
	if actor, ok := ctx.Value(ActorKey).(string); ok && actor != "" {
		return actor
	}
	return AnonymousActor
}
