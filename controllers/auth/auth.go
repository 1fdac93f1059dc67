package auth

import (
	"errors"

	"cobbler-shop/logger"
	"cobbler-shop/middleware"
	userModel "cobbler-shop/models/user"
	"cobbler-shop/types"
	authTypes "cobbler-shop/types/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthController handles registration, login and session management
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a staff account
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var existing userModel.User
	err := ac.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("username already taken"))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing username", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	u := userModel.User{Username: req.Username, PasswordHash: string(hash)}
	if err := ac.DB.Create(&u).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	logger.Success("Registered user " + u.Username)
	return c.Status(fiber.StatusCreated).JSON(types.OkMessage(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
	}, "User registered successfully"))
}

// Login verifies credentials and issues a session token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	var u userModel.User
	if err := ac.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("invalid username or password"))
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("invalid username or password"))
	}

	token, err := middleware.IssueToken(&u)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	if err := ac.DB.Model(&u).Update("token", token).Error; err != nil {
		logger.Error("Failed to store session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	logger.Success("User logged in: " + u.Username)
	return c.JSON(types.OkMessage(fiber.Map{
		"token":    token,
		"username": u.Username,
	}, "Login successful"))
}

// Profile returns the authenticated user
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	u, ok := c.Locals("user").(*userModel.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("not authenticated"))
	}
	return c.JSON(types.Ok(u))
}

// Logout revokes the current session token
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	u, ok := c.Locals("user").(*userModel.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("not authenticated"))
	}

	if err := ac.DB.Model(u).Update("token", nil).Error; err != nil {
		logger.Error("Failed to revoke token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.OkMessage(nil, "Logged out successfully"))
}
