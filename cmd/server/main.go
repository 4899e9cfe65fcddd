package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/AshokWPD/gold-updated/internal/cache"
	"github.com/AshokWPD/gold-updated/internal/handlers"
	"github.com/AshokWPD/gold-updated/internal/middleware"
	"github.com/AshokWPD/gold-updated/internal/notify"
	"github.com/AshokWPD/gold-updated/internal/policy"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/AshokWPD/gold-updated/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	app := fiber.New(fiber.Config{
		AppName: "Goltens Backend",
		// Attachment uploads up to 25MB + multipart overhead.
		BodyLimit: 28 * 1024 * 1024,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Redis cache (best-effort; everything degrades to direct DB reads)
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}
	directory := cache.NewDirectoryCache(redisCache)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	readRepo := repository.NewReadEventRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Push provider (best-effort; a nil dispatcher drops every fan-out)
	var dispatcher *notify.Dispatcher
	if sender, err := notify.InitFCM(context.Background()); err != nil {
		log.Printf("WARNING: FCM not configured: %v. Running without push notifications.", err)
	} else {
		dispatcher = notify.NewDispatcher(sender)
		log.Println("FCM initialized successfully")
	}
	defer notify.ShutdownFCM()

	// S3/MinIO storage (best-effort; attachment endpoints return 503 if missing)
	var s3Store *storage.S3Storage
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: S3 storage not configured: %v", err)
	} else if st, err := storage.NewS3Storage(cfg); err != nil {
		log.Printf("WARNING: Failed to initialize S3 storage: %v", err)
	} else {
		s3Store = st
		log.Printf("S3 storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	// Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, directory)
	groupService := service.NewGroupService(groupRepo, userRepo, messageRepo, directory)
	messageService := service.NewMessageService(messageRepo, groupRepo, userRepo, dispatcher, directory, s3Store)
	readService := service.NewReadService(messageRepo, groupRepo, userRepo, readRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo, dispatcher, directory)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	messageHandler := handlers.NewMessageHandler(messageService, readService)
	adminHandler := handlers.NewAdminHandler(userService, readService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	attachmentHandler := handlers.NewAttachmentHandler(s3Store)

	// Public routes
	api := app.Group("/api/v1")
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired())
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/deactivate", authHandler.Deactivate)

	group := protected.Group("/group")
	group.Get("/", groupHandler.MyGroups)
	group.Get("/:groupId", groupHandler.Get)
	group.Get("/:groupId/members", groupHandler.Members)
	group.Get("/:groupId/users/search", groupHandler.SearchUsersToAdd)
	group.Post("/", middleware.RequireAction(policy.ActionGroupManage), groupHandler.Create)
	group.Delete("/:groupId", middleware.RequireAction(policy.ActionGroupManage), groupHandler.Delete)
	group.Post("/:groupId/members", middleware.RequireAction(policy.ActionGroupManage), groupHandler.AddMember)
	group.Delete("/:groupId/members/:userId", middleware.RequireAction(policy.ActionGroupManage), groupHandler.RemoveMember)

	message := protected.Group("/message")
	message.Get("/group/:groupId", messageHandler.ListByGroup)
	message.Get("/read-status/:id/:groupId", middleware.RequireAction(policy.ActionReadStatusView), messageHandler.ReadStatus)
	message.Get("/changes/:messageId", middleware.RequireAction(policy.ActionAdminPanel), adminHandler.MessageChanges)
	message.Get("/:messageId", messageHandler.Get)
	message.Post("/", middleware.RequireAction(policy.ActionMessageCreate), messageHandler.Create)
	message.Put("/:messageId", middleware.RequireAction(policy.ActionMessageManage), messageHandler.Update)
	message.Delete("/:messageId", middleware.RequireAction(policy.ActionMessageManage), messageHandler.Delete)
	message.Put("/:messageId/read/:groupId", messageHandler.MarkRead)

	feedback := protected.Group("/feedback")
	feedback.Post("/", feedbackHandler.Create)
	feedback.Get("/assigned", feedbackHandler.Assigned)
	feedback.Get("/drawer", feedbackHandler.DrawerData)
	feedback.Get("/dashboard", middleware.RequireAction(policy.ActionFeedbackReview), feedbackHandler.Dashboard)
	feedback.Post("/:feedbackId/assign", middleware.RequireAction(policy.ActionFeedbackReview), feedbackHandler.Assign)
	feedback.Put("/:feedbackId/complete", feedbackHandler.Complete)
	feedback.Put("/:feedbackId/close", middleware.RequireAction(policy.ActionFeedbackReview), feedbackHandler.Close)

	attachments := protected.Group("/attachments")
	attachments.Post("/", attachmentHandler.Upload)
	attachments.Get("/*", attachmentHandler.Download)

	admin := protected.Group("/admin", middleware.RequireAction(policy.ActionAdminPanel))
	admin.Get("/users/search", adminHandler.SearchUsers)
	admin.Put("/users/:userId/role", adminHandler.SetRole)
	admin.Put("/users/:userId/active", adminHandler.SetActive)
	admin.Delete("/users/:userId", adminHandler.PurgeUser)
	admin.Get("/message/changes/:messageId", adminHandler.MessageChanges)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
