package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
)

const ContextPrincipal = "principal"

// AuthMiddleware trusts an HS256 token issued by the identity service. Only the
// subject and the user type are read; everything else about the user lives
// outside this service.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		userType, ok2 := claims["user_type"].(string)
		if !ok1 || !ok2 || userID <= 0 || !identity.UserType(userType).Valid() {
			abortUnauthorized(c, "invalid token payload")
			return
		}

		c.Set(ContextPrincipal, identity.Principal{
			UserID:   uint(userID),
			UserType: identity.UserType(userType),
		})

		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware.
func PrincipalFrom(c *gin.Context) identity.Principal {
	return c.MustGet(ContextPrincipal).(identity.Principal)
}

func abortUnauthorized(c *gin.Context, message string) {
	httperr.Unauthorized(c, httperr.CodeUnauthorized, message)
	c.Abort()
}
