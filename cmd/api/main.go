package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/config"
	"alfredoptarigan/recruitment-ranker/internal/handlers"
	"alfredoptarigan/recruitment-ranker/internal/logger"
	"alfredoptarigan/recruitment-ranker/internal/middleware"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	vacancyRepo := repositories.NewVacancyRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)

	// Services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	textExtractor := services.NewTextExtractor(log)
	skillExtractor := services.NewSkillExtractor(services.DefaultSkillRules(), log)

	applicationService := services.NewApplicationService(
		vacancyRepo,
		candidateRepo,
		docRepo,
		storageService,
		textExtractor,
		skillExtractor,
		log,
	)
	rankingService := services.NewRankingService(vacancyRepo, candidateRepo, log)
	jwtService := middleware.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	log.Info("services initialized")

	router := handlers.Router{
		Vacancies:    handlers.NewVacancyHandler(vacancyRepo, candidateRepo, rankingService, log),
		Applications: handlers.NewApplyHandler(applicationService, cfg.Storage.MaxFileSize, log),
		Candidates:   handlers.NewCandidateHandler(candidateRepo, applicationService, log),
		Interviews:   handlers.NewInterviewHandler(interviewRepo, candidateRepo, log),
		Tokens:       jwtService,
	}

	app := handlers.NewApp(cfg, true)
	router.Register(app)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
