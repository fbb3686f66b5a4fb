package main

import (
	"log"
	"time"

	"github.com/lokiedu/yoga_admin/auth"
	config "github.com/lokiedu/yoga_admin/configs"
	"github.com/lokiedu/yoga_admin/database"
	"github.com/lokiedu/yoga_admin/draftcache"
	"github.com/lokiedu/yoga_admin/events"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/jobs"
	"github.com/lokiedu/yoga_admin/notifications"
	"github.com/lokiedu/yoga_admin/routes"
	"github.com/lokiedu/yoga_admin/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	db := database.ConnectDB()
	database.Migrate(db)
	database.SeedAdmin(db)
	notifications.InitEmailService()

	gw := gateway.NewGormGateway(db)
	drafts := draftcache.NewGormStore(db)

	blobs, err := storage.NewCloudinaryStore(config.Config("CLOUDINARY_URL"))
	if err != nil {
		log.Fatalf("🔥 Failed to initialize Cloudinary: %v", err)
	}

	jwtSecret := config.Config("JWT_SECRET")

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() { jobs.SweepOrphanInstances(db) })
	go c.Start()
	log.Println("✅ Cron job for orphan instance sweep scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Yoga Studio Admin",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Yoga Studio Admin API",
		})
	})

	authHandler := &handlers.AuthHandler{
		Gateway:   gw,
		Verifier:  &auth.GoogleVerifier{ClientID: config.Config("GOOGLE_CLIENT_ID")},
		JWTSecret: jwtSecret,
	}
	classHandler := &handlers.ClassHandler{Gateway: gw, Drafts: drafts, Blobs: blobs}
	instanceHandler := &handlers.InstanceHandler{Gateway: gw}
	bookingHandler := &handlers.BookingHandler{Gateway: gw}
	transactionHandler := &handlers.TransactionHandler{Gateway: gw}
	classTypeHandler := &handlers.ClassTypeHandler{Gateway: gw}
	userHandler := &handlers.UserHandler{Gateway: gw}
	uploadHandler := &handlers.UploadHandler{Store: blobs}

	routes.AuthRoutes(app, authHandler)
	routes.ClassRoutes(app, classHandler, instanceHandler, jwtSecret)
	routes.InstanceRoutes(app, instanceHandler, jwtSecret)
	routes.BookingRoutes(app, bookingHandler, jwtSecret)
	routes.TransactionRoutes(app, transactionHandler, jwtSecret)
	routes.CatalogRoutes(app, classTypeHandler, userHandler, jwtSecret)
	routes.UploadRoutes(app, uploadHandler, jwtSecret)
	routes.EventRoutes(app)

	go events.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
