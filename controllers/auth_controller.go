package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripnest/tripnest_backend/middleware"
	"github.com/tripnest/tripnest_backend/models"
	"github.com/tripnest/tripnest_backend/utils"
)

// AuthController handles admin authentication
type AuthController struct {
	db *mongo.Database
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Database) *AuthController {
	return &AuthController{db: db}
}

// Login authenticates an admin and issues a bearer token.
// POST /api/admin/login
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	// Super-admin bootstrap credentials from .env
	superAdminEmail := os.Getenv("SUPER_ADMIN_EMAIL")
	superAdminPassword := os.Getenv("SUPER_ADMIN_PASSWORD")
	if superAdminEmail != "" && superAdminPassword != "" && email == strings.ToLower(superAdminEmail) {
		if req.Password != superAdminPassword {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		token, err := middleware.GenerateJWT("super_admin", email, "super_admin")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to generate token",
			})
		}
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Login successful",
			Data: map[string]interface{}{
				"token": token,
				"user": map[string]interface{}{
					"email": email,
					"role":  "super_admin",
				},
			},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	err = ac.db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		// Same response as a wrong password, no account enumeration
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateJWT(admin.ID.Hex(), admin.Email, admin.Role)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user": map[string]interface{}{
				"id":    admin.ID.Hex(),
				"name":  admin.Name,
				"email": admin.Email,
				"role":  admin.Role,
			},
		},
	})
}

// Logout revokes the presented token.
// POST /api/admin/logout
func (ac *AuthController) Logout(c echo.Context) error {
	claims := middleware.GetAdminFromToken(c)
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if claims != nil && token != "" {
		middleware.BlacklistToken(token, time.Unix(claims.ExpiresAt, 0))
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out",
	})
}

// RegisterAdmin creates a staff account. Super-admin only.
// POST /api/admin/register
func (ac *AuthController) RegisterAdmin(c echo.Context) error {
	var req models.RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, email and a password of at least 8 characters are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	admin := models.Admin{
		Name:      utils.SanitizeInput(req.Name),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := ac.db.Collection("admins").InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "An admin with this email already exists",
			})
		}
		log.Printf("Failed to create admin: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create admin",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Admin created successfully",
		Data: map[string]interface{}{
			"id":    result.InsertedID,
			"email": email,
			"role":  role,
		},
	})
}
