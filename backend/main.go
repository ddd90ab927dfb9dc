package main

import (
	"context"
	"log"
	"math/rand"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/routes"
	"ratemyschedule/backend/storage"
	"ratemyschedule/backend/utils"
	"time"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{EnableColors: !cfg.IsProduction()})

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cache utils.Cache = utils.NopCache{}
	client, err := utils.ConnectRedis(ctx, cfg.RedisAddr)
	switch {
	case err != nil:
		logger.Printf("redis unavailable at %s, caching disabled: %v", cfg.RedisAddr, err)
	case client != nil:
		cache = utils.NewRedisCache(client)
		defer client.Close()
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Error initializing upload storage: %v", err)
	}

	mailer := utils.NewMailer(cfg)
	if mailer == nil {
		logger.Println("SMTP not configured; contact messages will only be logged")
	}

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg, routes.Deps{
		Logger:  logger,
		Cache:   cache,
		Storage: store,
		Parser:  utils.NewScheduleParser(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Mailer:  mailer,
	})

	logger.Printf("listening on :%s (%s)", cfg.ServerPort, cfg.Env)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
