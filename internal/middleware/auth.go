package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/voteboard-dev/voteboard/internal/auth"
	"github.com/voteboard-dev/voteboard/internal/store"
	"github.com/voteboard-dev/voteboard/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthMiddleware requires a valid bearer token (or auth cookie) and puts the
// resolved user into the gin context. Requests without one are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := resolveUser(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authorization token"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a credential is present but
// lets the request through anonymously otherwise. Feature listing uses it so
// anyone can browse while signed-in users still see their vote state.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := resolveUser(ctx); ok {
			ctx.Set(types.ContextUserKey, user)
		}

		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context) (AuthenticatedUser, bool) {
	tokenString := extractToken(ctx)

	if tokenString == "" {
		return AuthenticatedUser{}, false
	}

	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		return AuthenticatedUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return AuthenticatedUser{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return AuthenticatedUser{}, false
	}

	user, err := store.GetUserByID(ctx.Request.Context(), uint(userIDFloat))

	if err != nil {
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, true
}

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
