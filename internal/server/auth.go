package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// generateToken creates a signed JWT carrying the subject ID and role.
func (s *Server) generateToken(userID uint, isAdmin bool) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"admin": isAdmin,
		"iss":   "social-media-api",
		"exp":   now.Add(s.config.TokenTTL()).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken validates a bearer token and extracts (subject ID, role).
// Expired tokens are distinguished from otherwise invalid ones.
func (s *Server) parseToken(tokenString string) (uint, bool, *models.AppError) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, false, models.NewTokenExpiredError()
		}
		return 0, false, models.NewTokenInvalidError(err)
	}
	if !token.Valid {
		return 0, false, models.NewTokenInvalidError(nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, models.NewTokenInvalidError(nil)
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false, models.NewTokenInvalidError(fmt.Errorf("missing subject claim"))
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false, models.NewTokenInvalidError(fmt.Errorf("malformed subject claim"))
	}

	isAdmin, _ := claims["admin"].(bool)

	return uint(userID), isAdmin, nil
}

// AuthRequired returns middleware that enforces authentication for protected
// routes. On success the request locals carry userID and isAdmin.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authorization header required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid authorization header format"))
		}

		userID, isAdmin, appErr := s.parseToken(parts[1])
		if appErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}

		c.Locals("userID", userID)
		c.Locals("isAdmin", isAdmin)

		return c.Next()
	}
}

// AdminRequired rejects non-admin callers with 403.
// Must be placed after AuthRequired so the role is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals("isAdmin").(bool); !isAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// SelfOrAdmin permits the operation only when the authenticated subject
// matches the route parameter or the caller is an admin.
// Must be placed after AuthRequired.
func (s *Server) SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resourceID, err := s.parseID(c, param)
		if err != nil {
			return nil
		}

		userID, _ := c.Locals("userID").(uint)
		isAdmin, _ := c.Locals("isAdmin").(bool)

		if userID != resourceID && !isAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You are not authorized to perform this action"))
		}
		return c.Next()
	}
}

// actor returns the authenticated caller's identity from request locals.
func actor(c *fiber.Ctx) (uint, bool) {
	userID, _ := c.Locals("userID").(uint)
	isAdmin, _ := c.Locals("isAdmin").(bool)
	return userID, isAdmin
}
