package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalClaims      = "claims"
	LocalCandidateId = "candidate_id"
)

var errMissingToken = errors.New("missing token")

// ParseToken validates an HS256 token issued by the auth service.
func ParseToken(secret, tokenStr string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, errMissingToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// BearerToken reads the Authorization header, falling back to ?token= for
// browser websocket handshakes.
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// JwtMiddleware guards routes when secret is set. An empty secret turns
// auth off.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			return ctx.Next()
		}

		claims, err := ParseToken(secret, BearerToken(ctx))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}

		ctx.Locals(LocalClaims, claims)
		if candidateId, ok := claims["candidate_id"].(string); ok {
			ctx.Locals(LocalCandidateId, candidateId)
		}
		return ctx.Next()
	}
}

// CandidateAllowed reports whether the authenticated caller may act for
// candidateId. Tokens without a candidate_id claim are not restricted.
func CandidateAllowed(ctx *fiber.Ctx, candidateId string) bool {
	claimed, ok := ctx.Locals(LocalCandidateId).(string)
	if !ok || claimed == "" {
		return true
	}
	return claimed == candidateId
}
