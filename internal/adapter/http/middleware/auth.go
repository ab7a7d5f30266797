package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase"
	"invoicely/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "authContext"

// Claims are the verified token claims issued by the authentication
// provider. The provider itself is out of scope; tokens are verified here,
// never minted.
type Claims struct {
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the bearer token and stores the caller's AuthContext
// on the request.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			abortUnauthorized(c, "missing authorization token")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}
		if claims.Subject == "" || claims.CompanyID == "" {
			abortUnauthorized(c, "token missing required claims")
			return
		}

		role := entities.Role(claims.Role)
		if role != entities.RoleOwner && role != entities.RoleTeammate {
			role = entities.RoleTeammate
		}

		c.Set(authContextKey, usecase.AuthContext{
			UserID:    claims.Subject,
			Email:     claims.Email,
			CompanyID: claims.CompanyID,
			Role:      role,
		})
		c.Next()
	}
}

// GetAuthContext returns the AuthContext stored by RequireAuth.
func GetAuthContext(c *gin.Context) (usecase.AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return usecase.AuthContext{}, false
	}
	auth, ok := v.(usecase.AuthContext)
	return auth, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, msg string) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", msg, http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
