package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Ninjabel/SetupCreator/internal/config"
	"github.com/Ninjabel/SetupCreator/internal/database"
	"github.com/Ninjabel/SetupCreator/internal/handler"
	"github.com/Ninjabel/SetupCreator/internal/middleware"
	"github.com/Ninjabel/SetupCreator/internal/queue"
	"github.com/Ninjabel/SetupCreator/internal/repository"
	"github.com/Ninjabel/SetupCreator/internal/router"
	"github.com/Ninjabel/SetupCreator/internal/scraper"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client turns the cache into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The consumer mirrors sync reports into logs/catalog.log and keeps
	// reconnecting on its own.
	go queue.StartCatalogConsumer()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	setups := repository.NewSetupRepo(db)
	scr := scraper.New(cfg.CeneoBaseURL)

	e := echo.New()
	e.Use(echomw.CORS())
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Category: handler.NewCategoryHandler(categories),
		Part:     handler.NewPartHandler(products, categories, scr, cfg.SyncWorkers),
		Setup:    handler.NewSetupHandler(setups),
	}, cfg.AuthSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
