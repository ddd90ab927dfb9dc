package middleware

import (
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if claims.Role != models.RoleAdmin {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is sent and otherwise lets
// the request through anonymously.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := utils.ExtractClaimsFromToken(c, cfg); err == nil {
			c.Locals(claimsKey, claims)
		}
		return c.Next()
	}
}

// DevOnly hides an endpoint in production.
func DevOnly(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.IsProduction() {
			return utils.Forbidden(c, "disabled in production")
		}
		return c.Next()
	}
}

// Claims returns the claims stored by one of the auth middlewares, or nil.
func Claims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(claimsKey).(*utils.Claims)
	return claims
}
