package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hawurwanda/globals"
	"hawurwanda/middleware"
	"hawurwanda/models"
)

const tokenTTL = 7 * 24 * time.Hour

// GenerateToken issues a signed JWT carrying the user's id, role and salon.
// Handlers downstream authorize from these claims without a user lookup.
func GenerateToken(u models.User) (string, error) {
	claims := middleware.Claims{
		UserID:  u.UserID,
		Role:    u.Role,
		SalonID: u.SalonID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
