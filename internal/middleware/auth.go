package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the principal: subject is the user id, role defaults to user.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p entities.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (entities.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(entities.Principal)
	return p, ok
}

// Auth authenticates HMAC-signed bearer tokens and stores the principal in the request context.
func Auth(secret string) func(next http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				authFailures.WithLabelValues("missing").Inc()
				utils.WriteError(w, "missing authorization", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				authFailures.WithLabelValues("malformed").Inc()
				utils.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			p, err := ParseToken(key, parts[1])
			if err != nil {
				authFailures.WithLabelValues("invalid").Inc()
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
				info.principal, info.authed = p, true
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func ParseToken(key []byte, tokenStr string) (entities.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return entities.Principal{}, err
	}

	if claims.Subject == "" {
		return entities.Principal{}, fmt.Errorf("token has no subject")
	}

	role := entities.Role(claims.Role)
	switch role {
	case "":
		role = entities.RoleUser
	case entities.RoleUser, entities.RoleSeller:
	default:
		return entities.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return entities.Principal{ID: claims.Subject, Role: role}, nil
}

// SignToken issues an HS256 token for p valid for ttl.
func SignToken(key []byte, p entities.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
