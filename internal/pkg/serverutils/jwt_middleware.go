package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware authenticates the request and stores the actor's user id in
// locals. A missing or invalid token is AuthenticationRequired, never
// AuthorizationDenied.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ErrUnauthenticated("missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ErrUnauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrUnauthenticated("invalid claims")
	}

	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return ErrUnauthenticated("invalid claims")
	}

	ctx.Locals("user_id", userId)
	return ctx.Next()
}
