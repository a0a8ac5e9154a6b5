package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vinted-clone/marketplace-backend/internal/config"
	"github.com/vinted-clone/marketplace-backend/internal/database"
	"github.com/vinted-clone/marketplace-backend/internal/docs"
	"github.com/vinted-clone/marketplace-backend/internal/handlers"
	"github.com/vinted-clone/marketplace-backend/internal/logging"
	"github.com/vinted-clone/marketplace-backend/internal/middleware"
	"github.com/vinted-clone/marketplace-backend/internal/routes"
	"github.com/vinted-clone/marketplace-backend/internal/services"
	"github.com/vinted-clone/marketplace-backend/internal/store"
	"github.com/vinted-clone/marketplace-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	logger := logging.New(cfg.Environment, os.Stdout)
	slog.SetDefault(logger)

	switch cfg.PasswordScheme {
	case utils.SchemeSHA256, utils.SchemeArgon2id:
		slog.Info("✅ Password scheme for new accounts", "scheme", cfg.PasswordScheme)
	default:
		slog.Error("Unknown PASSWORD_SCHEME", "scheme", cfg.PasswordScheme)
		os.Exit(1)
	}

	// Connect to MongoDB
	slog.Info("Connecting to MongoDB...", "uri", database.MaskURI(cfg.MongoURI))
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer database.Disconnect(client)

	dbName := cfg.MongoDB
	if dbName == "" {
		dbName = database.DatabaseName(cfg.MongoURI)
	}
	db := client.Database(dbName)

	if err := database.EnsureUserIndexes(db); err != nil {
		slog.Warn("⚠️  failed to ensure user indexes", "error", err)
	}
	if err := database.EnsureOfferIndexes(db); err != nil {
		slog.Warn("⚠️  failed to ensure offer indexes", "error", err)
	} else {
		slog.Info("✅ MongoDB indexes ensured", "database", dbName)
	}

	// Initialize Cloudinary service
	var uploader services.AssetUploader
	if cfg.UploadsEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			slog.Warn("Failed to initialize Cloudinary, image uploads will not be available", "error", err)
		} else {
			uploader = cld
			slog.Info("✅ Cloudinary service initialized", "folder", cfg.CloudinaryFolder)
		}
	} else {
		slog.Warn("Cloudinary credentials not found. Image uploads will not be available")
	}

	var payments handlers.PaymentService
	if cfg.StripeSecretKey != "" {
		payments = services.NewPaymentService(cfg.StripeSecretKey, cfg.StripeCurrency, nil)
		slog.Info("✅ Stripe payments enabled", "currency", cfg.StripeCurrency)
	} else {
		slog.Warn("STRIPE_API_SECRET not set. Payments will not be available")
	}

	home, err := docs.Home()
	if err != nil {
		slog.Error("Failed to render docs page", "error", err)
		os.Exit(1)
	}

	userStore := store.NewUserStore(db)
	offerStore := store.NewOfferStore(db)

	h := handlers.New(
		services.NewUserService(userStore, uploader, cfg.PasswordScheme, cfg.CloudinaryFolder),
		services.NewOfferService(offerStore, uploader, cfg.CloudinaryFolder),
		payments,
		cfg.MaxUploadBytes(),
	)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger, cfg.TrustProxy))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		r.Use(middleware.ProductionSecurity(cfg.AllowedHosts)...)
		slog.Info("✅ Production security enabled", "allowed_hosts", cfg.AllowedHosts)
	} else {
		r.Use(middleware.SecurityHeaders(false))
	}

	routes.SetupRoutes(r, h, middleware.RequireUser(userStore), home)

	slog.Info("🚀 Marketplace backend running", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
