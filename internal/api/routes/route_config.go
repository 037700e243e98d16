package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sfirke/meutch/internal/api/handlers"
	"github.com/sfirke/meutch/internal/middleware"
	"github.com/sfirke/meutch/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	ItemHandler     handlers.ItemHandler
	GiveawayHandler handlers.GiveawayHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Items()
	c.Giveaways()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Delete("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.DeleteAccount)
	}
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items", c.Middleware.AuthMiddleware(c.JWTService))

	items.Post("", c.ItemHandler.AddItem)
	items.Get("", c.ItemHandler.GetUserItems)
	items.Get("/:id", c.ItemHandler.GetItem)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)

	// Claim lifecycle operations
	items.Post("/:id/express-interest", c.GiveawayHandler.ExpressInterest)
	items.Post("/:id/withdraw-interest", c.GiveawayHandler.WithdrawInterest)
	items.Get("/:id/interests", c.GiveawayHandler.GetInterests)
	items.Post("/:id/select-recipient", c.GiveawayHandler.SelectRecipient)
	items.Post("/:id/change-recipient", c.GiveawayHandler.ChangeRecipient)
	items.Post("/:id/release-to-all", c.GiveawayHandler.ReleaseToAll)
	items.Post("/:id/confirm-handoff", c.GiveawayHandler.ConfirmHandoff)
}

func (c *Config) Giveaways() {
	// The feed is reachable without a login; anonymous viewers only see
	// public giveaways.
	giveaways := c.App.Group("/api/v1/giveaways", c.Middleware.OptionalAuthMiddleware(c.JWTService))
	giveaways.Get("", c.GiveawayHandler.GetGiveaways)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
