package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/divkom-hmeitb/Backend-Pemira-2026/api"
	"github.com/divkom-hmeitb/Backend-Pemira-2026/voter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("missing DATABASE_URL environment variable")
	}
	apiToken := os.Getenv("API_TOKEN")
	if apiToken == "" {
		log.Println("API_TOKEN not set, the /api token check is disabled")
	}
	repo, err := voter.NewGormRepository(databaseURL)
	if err != nil {
		log.Fatalf("failed to open voter store: %q", err)
	}
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.HTTPErrorHandler = api.ErrorHandler
	handler := api.New(repo, voter.NewService(repo), apiToken)
	handler.Register(e)
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("server online at ", port)
	log.Fatal(e.Start(":" + port))
}
