package controllers

import (
	"liftakids-api/config"
	"liftakids-api/middleware"
	"liftakids-api/models"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	AccountType string `json:"account_type" binding:"required,oneof=admin donor institution"`
}

type LoginResponse struct {
	Token       string      `json:"token"`
	AccountType string      `json:"account_type"`
	Account     interface{} `json:"account"`
	Message     string      `json:"message"`
}

// Login authenticates an admin, donor or institution account.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		accountID int
		hash      string
		account   interface{}
	)

	switch req.AccountType {
	case models.AccountTypeAdmin:
		var admin models.Admin
		if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		accountID, hash, account = admin.AdminID, admin.Password, admin
	case models.AccountTypeDonor:
		var donor models.Donor
		if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&donor).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		accountID, hash, account = donor.DonorID, donor.Password, donor
	case models.AccountTypeInstitution:
		var institution models.Institution
		if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&institution).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if !institution.IsApproved() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Institution is awaiting approval"})
			return
		}
		accountID, hash, account = institution.InstitutionID, institution.Password, institution
	}

	if !CheckPasswordHash(req.Password, hash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := generateToken(accountID, req.Email, req.AccountType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:       token,
		AccountType: req.AccountType,
		Account:     account,
		Message:     "Login successful",
	})
}

// GetProfile returns the session snapshot for the authenticated account.
// Clients read this once after login instead of refetching per view.
func GetProfile(c *gin.Context) {
	accountID, _ := c.Get("accountID")
	accountType, _ := c.Get("accountType")

	switch accountType.(string) {
	case models.AccountTypeAdmin:
		var admin models.Admin
		if err := config.DB.Where("admin_id = ?", accountID).First(&admin).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account_type": accountType, "account": admin})
	case models.AccountTypeDonor:
		var donor models.Donor
		if err := config.DB.Where("donor_id = ?", accountID).First(&donor).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account_type": accountType, "account": donor})
	case models.AccountTypeInstitution:
		var institution models.Institution
		if err := config.DB.Preload("Division").Preload("District").Preload("Thana").Preload("Union").
			Where("institution_id = ?", accountID).First(&institution).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account_type": accountType, "account": institution})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	}
}

// ChangePassword updates the password of the authenticated account.
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID, _ := c.Get("accountID")
	accountType, _ := c.Get("accountType")

	newHash, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	now := time.Now()

	update := func(current string, apply func() error) {
		if !CheckPasswordHash(req.CurrentPassword, current) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		if err := apply(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}

	switch accountType.(string) {
	case models.AccountTypeAdmin:
		var admin models.Admin
		if err := config.DB.Where("admin_id = ?", accountID).First(&admin).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		update(admin.Password, func() error {
			admin.Password = newHash
			admin.UpdateAt = &now
			return config.DB.Save(&admin).Error
		})
	case models.AccountTypeDonor:
		var donor models.Donor
		if err := config.DB.Where("donor_id = ?", accountID).First(&donor).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		update(donor.Password, func() error {
			donor.Password = newHash
			donor.UpdateAt = &now
			return config.DB.Save(&donor).Error
		})
	case models.AccountTypeInstitution:
		var institution models.Institution
		if err := config.DB.Where("institution_id = ?", accountID).First(&institution).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		update(institution.Password, func() error {
			institution.Password = newHash
			institution.UpdateAt = &now
			return config.DB.Save(&institution).Error
		})
	}
}

// generateToken creates JWT token
func generateToken(accountID int, email, accountType string) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	claims := middleware.Claims{
		AccountID:   accountID,
		Email:       email,
		AccountType: accountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
