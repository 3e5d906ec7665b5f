package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ismail-dev-code/meal-giver-server/internal/auth"
	"github.com/ismail-dev-code/meal-giver-server/internal/config"
	"github.com/ismail-dev-code/meal-giver-server/internal/db"
	"github.com/ismail-dev-code/meal-giver-server/internal/handlers"
	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/models"
	"github.com/ismail-dev-code/meal-giver-server/internal/payment"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
	"github.com/ismail-dev-code/meal-giver-server/internal/storage"
	"github.com/ismail-dev-code/meal-giver-server/internal/store"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		logger.Fatalf("JWT_SECRET is required")
	}

	database := db.Connect(cfg.MongoURI, cfg.DBName)

	images, err := storage.NewImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		logger.Fatalf("MinIO connection failed: %v", err)
	}

	var gateway payment.Gateway
	if cfg.PaymentAPIKey != "" {
		gateway = payment.NewHTTPGateway(cfg.PaymentAPIBase, cfg.PaymentAPIKey)
	} else {
		logger.Warn().Msg("no payment API key configured, using fake gateway")
		gateway = payment.FakeGateway{}
	}

	// Stores
	userStore := store.NewUserStore(database)
	donationStore := store.NewDonationStore(database)
	requestStore := store.NewRequestStore(database)
	roleRequestStore := store.NewRoleRequestStore(database)
	favoriteStore := store.NewFavoriteStore(database)
	reviewStore := store.NewReviewStore(database)

	// Services
	userService := services.NewUserService(userStore)
	donationService := services.NewDonationService(donationStore)
	requestService := services.NewRequestService(requestStore, donationStore)
	pickupService := services.NewPickupService(requestStore, donationStore)
	ledgerService := services.NewLedgerService(favoriteStore, reviewStore, donationStore)
	roleRequestService := services.NewRoleRequestService(roleRequestStore, userStore, gateway)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	donationHandler := handlers.NewDonationHandler(donationService, images)
	requestHandler := handlers.NewRequestHandler(requestService, pickupService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	roleRequestHandler := handlers.NewRoleRequestHandler(roleRequestService)

	app := fiber.New(fiber.Config{ErrorHandler: httperr.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.RequestLogger())
	app.Use(cors.New())

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	authenticated := middleware.Authenticate(verifier)

	adminOnly := middleware.RequireRole(userService, models.RoleAdmin)
	restaurantOnly := middleware.RequireRole(userService, models.RoleRestaurant)
	charityOnly := middleware.RequireRole(userService, models.RoleCharity)
	adminOrRestaurant := middleware.RequireRole(userService, models.RoleAdmin, models.RoleRestaurant)

	// User routes
	users := app.Group("/users", authenticated)
	users.Post("/", userHandler.Upsert)
	users.Get("/:email/role", userHandler.Role)

	// Donation routes
	donations := app.Group("/donations")
	donations.Get("/", donationHandler.List)
	donations.Get("/featured", donationHandler.Featured)
	donations.Get("/:id", donationHandler.Get)
	donations.Post("/", authenticated, restaurantOnly, donationHandler.Create)
	donations.Patch("/:id", authenticated, adminOrRestaurant, donationHandler.Update)
	donations.Patch("/:id/status", authenticated, adminOrRestaurant, donationHandler.SetStatus)
	donations.Delete("/:id", authenticated, adminOrRestaurant, donationHandler.Delete)
	donations.Post("/:id/image", authenticated, adminOrRestaurant, donationHandler.UploadImage)
	donations.Post("/:id/requests", authenticated, charityOnly, requestHandler.Submit)

	// Request routes
	requests := app.Group("/requests", authenticated)
	requests.Patch("/:id", restaurantOnly, requestHandler.Resolve)
	requests.Delete("/:id", charityOnly, requestHandler.Cancel)

	restaurant := app.Group("/restaurant", authenticated, restaurantOnly)
	restaurant.Get("/requests", requestHandler.RestaurantInbox)

	charity := app.Group("/charity", authenticated, charityOnly)
	charity.Get("/requests", requestHandler.CharityRequests)
	charity.Get("/pickups", requestHandler.CharityPickups)
	charity.Get("/received", requestHandler.CharityReceived)
	charity.Patch("/pickup-confirm/:id", requestHandler.ConfirmPickup)

	// Favorites and reviews
	favorites := app.Group("/favorites", authenticated)
	favorites.Post("/", ledgerHandler.Favorite)
	favorites.Get("/", ledgerHandler.ListFavorites)
	favorites.Delete("/:id", ledgerHandler.Unfavorite)

	app.Get("/reviews", ledgerHandler.ListReviews)
	reviews := app.Group("/reviews", authenticated)
	reviews.Post("/", ledgerHandler.AddReview)
	reviews.Delete("/:id", ledgerHandler.DeleteReview)

	// Role elevation
	roleRequests := app.Group("/role-requests", authenticated)
	roleRequests.Post("/", roleRequestHandler.Submit)
	roleRequests.Get("/mine", roleRequestHandler.Mine)

	// Admin routes
	adminGroup := app.Group("/admin", authenticated, adminOnly)
	adminGroup.Get("/users", userHandler.List)
	adminGroup.Patch("/users/:email/role", userHandler.SetRole)
	adminGroup.Delete("/users/:email", userHandler.Delete)
	adminGroup.Patch("/donations/:id/approval", donationHandler.SetApproval)
	adminGroup.Get("/role-requests", roleRequestHandler.List)
	adminGroup.Patch("/role-requests/:id", roleRequestHandler.Resolve)

	logger.Infof("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
