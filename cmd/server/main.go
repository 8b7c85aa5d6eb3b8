package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"

	"github.com/rotemgl/jars_backend/internal/application"
	"github.com/rotemgl/jars_backend/internal/config"
	"github.com/rotemgl/jars_backend/internal/email"
	"github.com/rotemgl/jars_backend/internal/infrastructure/notify"
	"github.com/rotemgl/jars_backend/internal/infrastructure/repository"
	handlers "github.com/rotemgl/jars_backend/internal/interfaces/http"
	services "github.com/rotemgl/jars_backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * application.MaxUploadSize,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Object storage
	s3Client, err := services.NewS3Client(cfg)
	if err != nil {
		log.Fatalf("Error creating S3 client: %v", err)
	}
	catImageStore := services.NewObjectStore(s3Client, cfg.CatImageBucket, cfg.S3PublicBase)
	productStore := services.NewObjectStore(s3Client, cfg.ProductBucket, cfg.S3PublicBase)

	pipeline := application.NewImagePipeline()

	// Cat gallery
	catImageRepo := repository.NewCatImageRepository(db)
	galleryService := application.NewGalleryService(catImageRepo, catImageStore, pipeline)
	galleryHandler := handlers.NewGalleryHandler(galleryService)

	// Site settings + change feed
	settingsRepo := repository.NewSettingsRepository(db)
	settingsService := application.NewSettingsService(settingsRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	feed, err := notify.NewSettingsFeed(cfg.GetDBConnString())
	if err != nil {
		log.Printf("Warning: settings change feed unavailable: %v", err)
	} else {
		defer feed.Close()
		go settingsService.Watch(context.Background(), feed.Subscribe())
	}

	// Products and processes
	productRepo := repository.NewProductRepository(db)
	productService := application.NewProductService(productRepo, productStore, pipeline)
	productHandler := handlers.NewProductHandler(productService)

	processRepo := repository.NewProcessRepository(db)
	processService := application.NewProcessService(processRepo)
	processHandler := handlers.NewProcessHandler(processService)

	// Email client
	mailer, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		mailer = nil
	}

	// Contact form
	contactRepo := repository.NewContactRepository(db)
	contactService := application.NewContactService(contactRepo, mailer, cfg.ContactEmail)
	contactLimiter := application.NewRateLimiter(time.Minute, 5)
	contactHandler := handlers.NewContactHandler(contactService, contactLimiter)

	api := app.Group("/api")

	gallery := api.Group("/gallery")
	gallery.Get("/", galleryHandler.GetImages)
	gallery.Post("/upload", galleryHandler.Upload)
	gallery.Patch("/reorder", galleryHandler.Reorder)
	gallery.Delete("/:id", galleryHandler.DeleteImage)

	settings := api.Group("/settings")
	settings.Get("/events", settingsHandler.Events)
	settings.Get("/:key", settingsHandler.GetSetting)
	settings.Post("/:key/toggle", settingsHandler.Toggle)

	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Post("/image", productHandler.UploadImage)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	processes := api.Group("/processes")
	processes.Get("/", processHandler.GetProcesses)
	processes.Post("/", processHandler.CreateProcess)
	processes.Get("/:id", processHandler.GetProcess)
	processes.Put("/:id", processHandler.UpdateProcess)
	processes.Delete("/:id", processHandler.DeleteProcess)

	contact := api.Group("/contact")
	contact.Post("/", contactHandler.Create)
	contact.Get("/", contactHandler.List)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
