package main

import (
	"fmt"
	"os"
	"time"

	"cobbler-shop/constants"
	"cobbler-shop/database"
	"cobbler-shop/database/seeders"
	"cobbler-shop/logger"
	"cobbler-shop/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       constants.MaxBodyLimitBytes,
	})
	env := godotenv.Load()
	if env != nil {
		logger.Warning("No .env file loaded, falling back to process environment")
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	seeders.SeedAdminUser(db)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Token",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db)

	host := os.Getenv("APP_HOST")
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000"
	}
	logger.Success(fmt.Sprintf("Server is running on %s:%s", host, port))
	if err := app.Listen(host + ":" + port); err != nil {
		logger.Fatal("Server stopped: " + err.Error())
	}
}
