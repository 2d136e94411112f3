package middleware

import (
	"net/http"
	"strings"

	"steeraway/internal/models"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthRequired validates the bearer token and puts the caller's
// identity on the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, string(utils.KindUnauthorized), "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, string(utils.KindUnauthorized), "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, string(utils.KindUnauthorized), utils.ErrInvalidToken)
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, string(utils.KindUnauthorized), utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// AdminRequired ensures the authenticated caller is an admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, string(utils.KindUnauthorized), utils.ErrUnauthorized)
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(models.UserRoleAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, string(utils.KindForbidden), "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by AuthRequired.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}
