package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"projectease/internal/domain/entities"
	"projectease/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	actorContextKey  = "actor"
	authHeaderPrefix = "Bearer "
)

// TokenClaims are the claims issued by the account service.
type TokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth resolves the acting user from an HS256 bearer token.
type JWTAuth struct {
	secret []byte
	log    *zap.Logger
}

func NewJWTAuth(secret string, log *zap.Logger) *JWTAuth {
	return &JWTAuth{secret: []byte(secret), log: log}
}

// Authenticate stores the Actor in the context. When required is false a
// missing header continues as an anonymous actor; a present but invalid
// token is always rejected.
func (a *JWTAuth) Authenticate(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			if required {
				a.abort(c, http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", "Authentication required", "missing authorization header")
				return
			}
			c.Set(actorContextKey, entities.Actor{})
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, authHeaderPrefix)
		if tokenString == header {
			a.abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid authorization header", "missing bearer prefix")
			return
		}

		claims, err := a.validate(tokenString)
		if err != nil {
			a.abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token", err.Error())
			return
		}

		role := entities.RoleUser
		if claims.Role == string(entities.RoleAdmin) {
			role = entities.RoleAdmin
		}
		c.Set(actorContextKey, entities.Actor{ID: claims.Subject, Role: role})
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFromContext(c).IsAdmin() {
			appErr := pkg.NewDomainErrorSimple("FORBIDDEN", "Admin access required", http.StatusForbidden)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}

// ActorFromContext returns the anonymous actor when none was set.
func ActorFromContext(c *gin.Context) entities.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(entities.Actor); ok {
			return actor
		}
	}
	return entities.Actor{}
}

func (a *JWTAuth) validate(tokenString string) (*TokenClaims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("token verification not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, errors.New("malformed token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, errors.New("invalid token signature")
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, errors.New("token expired")
		default:
			return nil, fmt.Errorf("invalid token: %w", err)
		}
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("subject missing in token")
	}
	return claims, nil
}

func (a *JWTAuth) abort(c *gin.Context, status int, code, message, reason string) {
	a.log.Warn("authentication failed", zap.String("path", c.Request.URL.Path), zap.String("reason", reason))
	appErr := pkg.NewDomainErrorSimple(code, message, status)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
