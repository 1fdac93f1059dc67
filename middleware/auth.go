package middleware

import (
	"fmt"
	"os"
	"strings"
	"time"

	userModel "cobbler-shop/models/user"
	"cobbler-shop/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "cobbler-shop-dev-secret"
	}
	return []byte(secret)
}

// IssueToken signs a session JWT for a user.
func IssueToken(u *userModel.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyToken parses and validates a session JWT.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// ExtractToken pulls the session token from the Authorization header
// (Bearer scheme) or the X-Token header.
func ExtractToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Get("X-Token")
}

// IsAuthenticated gates a route behind a valid, unrevoked session token.
// The matching user row is stored in c.Locals("user").
func IsAuthenticated(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("missing authentication token"))
		}

		claims, err := VerifyToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("invalid or expired token"))
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("invalid token claims"))
		}

		var u userModel.User
		if err := db.First(&u, uint(sub)).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("user not found"))
		}

		// Logout clears users.token, which revokes the session even
		// before the JWT expires.
		if u.Token == nil || *u.Token != tokenString {
			return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("session revoked"))
		}

		c.Locals("user", &u)
		return c.Next()
	}
}
