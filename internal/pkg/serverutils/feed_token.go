package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Observer-feed tokens are short lived and scoped to a single session; they
// exist so the websocket feed can be opened from a browser without carrying
// the platform's own credentials.
const feedTokenTTL = 15 * time.Minute

func MintFeedToken(sessionId string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionId,
		"exp":        time.Now().Add(feedTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// FeedJwtMiddleware validates the token passed as a query parameter (browser
// websocket clients cannot set headers) and pins it to the requested session.
func FeedJwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	sessionId, _ := claims["session_id"].(string)
	if sessionId == "" || sessionId != ctx.Params("session_id") {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Token not valid for this session"})
	}

	ctx.Locals("session_id", sessionId)
	return ctx.Next()
}
