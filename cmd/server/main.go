package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tennistrivia/internal/auth"
	"tennistrivia/internal/cache"
	"tennistrivia/internal/config"
	"tennistrivia/internal/db"
	"tennistrivia/internal/handler"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
	"tennistrivia/internal/router"
	"tennistrivia/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Tournament{},
		&model.Player{},
		&model.Match{},
		&model.UserPicks{},
		&model.Forum{},
		&model.Thread{},
		&model.Post{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}
	// Ranking kinds live in parallel tables sharing one row shape.
	for _, kind := range model.RankingKinds {
		if err := gormDB.Table(kind.TableName()).AutoMigrate(&model.RankingEntry{}); err != nil {
			log.Fatalf("auto-migrate %s: %v", kind.TableName(), err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewRefreshTokenRepository(gormDB)
	tournamentRepo := repository.NewTournamentRepository(gormDB)
	playerRepo := repository.NewPlayerRepository(gormDB)
	matchRepo := repository.NewMatchRepository(gormDB)
	picksRepo := repository.NewPicksRepository(gormDB)
	rankingRepo := repository.NewRankingRepository(gormDB)
	forumRepo := repository.NewForumRepository(gormDB)
	threadRepo := repository.NewThreadRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Services
	tokenService := auth.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := service.NewAuthService(userRepo, tokenRepo, tokenService, cfg.AccessExpiresIn)
	catalogService := service.NewCatalogService(tournamentRepo, playerRepo, matchRepo, cacheClient)
	picksService := service.NewPicksService(picksRepo, playerRepo, matchRepo)
	rankingService := service.NewRankingService(rankingRepo, playerRepo, matchRepo)
	forumService := service.NewForumService(forumRepo, threadRepo, postRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	picksHandler := handler.NewPicksHandler(picksService)
	rankingHandler := handler.NewRankingHandler(rankingService)
	forumHandler := handler.NewForumHandler(forumService)

	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		catalogHandler,
		picksHandler,
		rankingHandler,
		forumHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Printf("listening on %s (%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
