package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// hmacMethods are the only signing methods accepted for bearer tokens.
var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// AuthMiddleware validates HMAC-signed bearer tokens. The token subject is the
// actor stamped on client, catalog and transaction audit fields, and is added
// to the request logger so every ledger mutation log names who made it.
// Extra parser options (issuer, leeway) are applied on top of the method check.
func AuthMiddleware(jwtSecret string, opts ...jwt.ParserOption) gin.HandlerFunc {
	parser := jwt.NewParser(append([]jwt.ParserOption{jwt.WithValidMethods(hmacMethods)}, opts...)...)
	key := []byte(jwtSecret)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		scheme, tokenString, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			logger.Warn("Bearer token missing", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil {
			logger.Warn("Rejected bearer token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": tokenErrorMessage(err)})
			return
		}

		actor := strings.TrimSpace(claims.Subject)
		if actor == "" {
			logger.Warn("Bearer token has no subject")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger.With(slog.String("actor", actor))))
		c.Next()
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "Token issuer not accepted"
	default:
		return "Invalid token"
	}
}
