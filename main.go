package main

import (
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/api"
	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/realtime"
	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/storage"
	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/uploads"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	intake, err := uploads.New(uploadDir)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	logger := log.New()
	store := storage.New()
	hub := realtime.NewHub(logger)
	engine := realtime.NewEngine(store, hub, logger)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	api.Register(e, engine, intake, uploadDir, logger)

	listenAddr := ":5000"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
