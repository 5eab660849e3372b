package routes

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/internal/api/handlers"
	"MangaVerse-Backend/internal/middleware"
	"MangaVerse-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	WalletHandler       handlers.WalletHandler
	SubscriptionHandler handlers.SubscriptionHandler
	PurchaseHandler     handlers.PurchaseHandler
	AccessHandler       handlers.AccessHandler
	MangaHandler        handlers.MangaHandler
	MidtransHandler     handlers.MidtransHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Wallet()
	c.Subscription()
	c.Purchase()
	c.Manga()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Wallet() {
	wallet := c.App.Group("/api/v1/wallet", c.Middleware.AuthMiddleware(c.JWTService))
	{
		wallet.Get("", c.WalletHandler.GetWallet)
		wallet.Get("/transactions", c.WalletHandler.GetTransactionHistory)
		wallet.Get("/packages", c.WalletHandler.GetTokenPackages)
		wallet.Post("/buy", c.MidtransHandler.BuyTokens)
		wallet.Post("/reward", c.Middleware.RequireRoles(domain.RoleAdmin, domain.RoleMod), c.WalletHandler.RewardCoins)
	}
}

func (c *Config) Subscription() {
	subscription := c.App.Group("/api/v1/subscriptions")
	{
		subscription.Get("/plans", c.SubscriptionHandler.GetPlans)
		subscription.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetActiveSubscription)
		subscription.Get("/benefits", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetBenefits)
		subscription.Get("/history", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetHistory)
		subscription.Post("/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Subscribe)
		subscription.Post("/cancel", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Cancel)
	}
}

func (c *Config) Purchase() {
	purchase := c.App.Group("/api/v1/purchases")
	{
		purchase.Post("/chapter", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.BuyChapter)
		purchase.Post("/manga", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.BuyManga)
		purchase.Get("/history", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.GetPurchaseHistory)
		purchase.Post("/donate", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.MakeDonation)
		purchase.Get("/donate/options", c.PurchaseHandler.GetDonationOptions)
		purchase.Post(
			"/refund",
			c.Middleware.AuthMiddleware(c.JWTService),
			c.Middleware.RequireRoles(domain.RoleAdmin),
			c.PurchaseHandler.RefundPurchase,
		)
	}
}

func (c *Config) Manga() {
	manga := c.App.Group("/api/v1/mangas")
	{
		manga.Get("", c.MangaHandler.GetMangas)
		manga.Get("/:id", c.MangaHandler.GetMangaDetails)
		manga.Get("/:id/chapters", c.MangaHandler.GetChapters)
		manga.Get("/:id/access", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.AccessHandler.CheckMangaAccess)

		admin := c.Middleware.RequireRoles(domain.RoleAdmin, domain.RoleMod)
		manga.Post("", c.Middleware.AuthMiddleware(c.JWTService), admin, c.MangaHandler.CreateManga)
		manga.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), admin, c.MangaHandler.UpdateManga)
		manga.Post("/cover", c.Middleware.AuthMiddleware(c.JWTService), admin, c.MangaHandler.UploadCover)
		manga.Post("/chapters", c.Middleware.AuthMiddleware(c.JWTService), admin, c.MangaHandler.AddChapter)
	}

	chapter := c.App.Group("/api/v1/chapters")
	{
		chapter.Get("/:id", c.MangaHandler.GetChapterDetails)
		chapter.Get("/:id/access", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.AccessHandler.CheckChapterAccess)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.MidtransHandler.MidtransWebhookHandler)
}
