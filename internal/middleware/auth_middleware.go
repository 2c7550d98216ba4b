package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/auth"
	"github.com/yigit/campusbuzz/internal/store"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextRoleType = "roleType"
)

// AuthMiddleware resolves the acting user from a session token
type AuthMiddleware struct {
	jwtService *auth.JWTService
	store      *store.Store
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, st *store.Store) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		store:      st,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest reads the Authorization header. Browsers cannot set headers
// on a WebSocket upgrade, so the token query parameter is accepted as well.
func tokenFromRequest(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		authHeader = c.Query("token")
	}
	if authHeader == "" {
		return "", false
	}
	authHeader = strings.Trim(authHeader, "\"'")

	// raw JWT (Swagger UI sends it without the scheme)
	if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader, true
	}
	token, err := auth.ExtractBearerToken(authHeader)
	if err != nil || strings.Count(token, ".") != 2 {
		return "", false
	}
	return token, true
}

// JWTAuth validates the session token and stores the acting user id and role
// in the context. Tokens for users that were deleted are rejected, and
// suspended users get 403.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing or malformed")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		var (
			user  models.User
			found bool
		)
		m.store.View(func(st *store.State) { user, found = st.Users.Get(claims.UserID) })
		if !found {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "User no longer exists")
			return
		}
		if !user.IsActive() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account suspended")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRoleType, user.Role)
		c.Next()
	}
}

// RoleRequired lets the request through only if the acting user has one of
// roles. It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		roleType, _ := role.(models.RoleType)
		for _, r := range roles {
			if r == roleType {
				c.Next()
				return
			}
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// UserID returns the acting user id set by JWTAuth
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
