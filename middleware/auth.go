package middleware

import (
	"errors"
	"liftakids-api/config"
	"liftakids-api/models"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AccountID   int    `json:"account_id"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check the account still exists for its type
		if err := accountExists(claims.AccountType, claims.AccountID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}

		// Set account info in context
		c.Set("accountID", claims.AccountID)
		c.Set("email", claims.Email)
		c.Set("accountType", claims.AccountType)

		c.Next()
	}
}

func accountExists(accountType string, accountID int) error {
	switch accountType {
	case models.AccountTypeAdmin:
		var admin models.Admin
		return config.DB.Where("admin_id = ? AND delete_at IS NULL", accountID).First(&admin).Error
	case models.AccountTypeDonor:
		var donor models.Donor
		return config.DB.Where("donor_id = ? AND delete_at IS NULL", accountID).First(&donor).Error
	case models.AccountTypeInstitution:
		var institution models.Institution
		return config.DB.Where("institution_id = ? AND delete_at IS NULL", accountID).First(&institution).Error
	default:
		return errors.New("unknown account type")
	}
}

// RequireAccountType checks if the authenticated account has one of the given types
func RequireAccountType(accountTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentType, exists := c.Get("accountType")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account type not found"})
			c.Abort()
			return
		}

		accountType := currentType.(string)
		allowed := false
		for _, t := range accountTypes {
			if accountType == t {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
