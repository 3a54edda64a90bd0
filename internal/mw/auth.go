package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const CustomerCtxKey contextKey = "customer_id"

// AuthMiddleware accepts HMAC-signed bearer tokens carrying a customer_id
// claim. Tokens are issued elsewhere; this service only verifies them.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || tokenString == "" {
				http.Error(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid claims", http.StatusUnauthorized)
				return
			}

			customerID, ok := claims["customer_id"].(string)
			if !ok || customerID == "" {
				http.Error(w, "customer_id not found in token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CustomerCtxKey, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CustomerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CustomerCtxKey).(string)
	return id, ok
}
