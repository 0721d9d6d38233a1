package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/repository"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

const tokenTTL = 30 * 24 * time.Hour

func signToken(userID string) (string, error) {
	secret := config.Get().JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func userPayload(u models.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "email": u.Email}
}

// Register creates an account and returns a signed token.
func Register(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), config.Get().BcryptCost)
	if err != nil {
		logger.Error(ctx, "Password hash failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	user := &models.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(hash),
	}
	if err := repository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		logger.Error(ctx, "Register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	token, err := signToken(user.ID)
	if err != nil {
		logger.Error(ctx, "Token sign failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to Derry...",
		"token":   token,
		"user":    userPayload(*user),
	})
}

// Login verifies credentials and returns a signed token.
func Login(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	user, err := repository.GetUserByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error(ctx, "Login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := signToken(user.ID)
	if err != nil {
		logger.Error(ctx, "Token sign failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "You'll float too...",
		"token":   token,
		"user":    userPayload(user),
	})
}

// ResetPassword sets a new password for a user matched by both email and
// username.
func ResetPassword(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Email       string `json:"email" binding:"required"`
		Username    string `json:"username" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	user, err := repository.GetUserByEmailAndUsername(ctx, body.Email, body.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found. Please check your email and username."})
			return
		}
		logger.Error(ctx, "ResetPassword lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), config.Get().BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		return
	}
	if err := repository.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful. You can now login with your new password."})
}

// DeleteAccount removes the authenticated user and all their todos.
func DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return
	}
	if err := repository.DeleteAllForUser(ctx, uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	if err := repository.DeleteUser(ctx, uid); err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully. You have left Derry..."})
}
