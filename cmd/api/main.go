package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spades-ems/portal/internal/api/http"
	"github.com/spades-ems/portal/internal/api/http/handlers"
	"github.com/spades-ems/portal/internal/auth"
	"github.com/spades-ems/portal/internal/bot"
	"github.com/spades-ems/portal/internal/config"
	"github.com/spades-ems/portal/internal/events"
	"github.com/spades-ems/portal/internal/observability"
	"github.com/spades-ems/portal/internal/persistence"
	"github.com/spades-ems/portal/internal/repository"
	"github.com/spades-ems/portal/internal/service"
	"github.com/spades-ems/portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	applicationRepo := repository.NewApplicationRepository(pool)
	messageRepo := repository.NewApplicationMessageRepository(pool)
	voteRepo := repository.NewApplicationVoteRepository(pool)
	appLogRepo := repository.NewApplicationLogRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	patientRepo := repository.NewPatientRepository(pool)
	careRepo := repository.NewCareRepository(pool)
	medicationRepo := repository.NewMedicationRepository(pool)
	wikiRepo := repository.NewWikiRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	bridge := bot.NewClient(cfg.Bot, logger)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(cfg, employeeRepo, auditService)
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		MessageRepo:     messageRepo,
		VoteRepo:        voteRepo,
		LogRepo:         appLogRepo,
		Dispatcher:      dispatcher,
	})
	messageService := service.NewMessageService(service.MessageDependencies{
		ApplicationRepo: applicationRepo,
		MessageRepo:     messageRepo,
		LogRepo:         appLogRepo,
		Bridge:          bridge,
		Logger:          logger,
	})
	patientService := service.NewPatientService(patientRepo, auditService)
	careService := service.NewCareService(careRepo, auditService)
	medicationService := service.NewMedicationService(medicationRepo, auditService)
	wikiService := service.NewWikiService(wikiRepo, auditService)
	shiftService := service.NewShiftService(shiftRepo, employeeRepo)
	reminderService := service.NewReminderService(bridge, logger, nil)
	notifierService := service.NewNotifierService(dispatcher, bridge, logger)

	worker.StartNotifierWorker(notifierService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Employees:      handlers.NewEmployeesHandler(authService),
		Applications:   handlers.NewApplicationsHandler(applicationService, messageService),
		Public:         handlers.NewPublicHandler(applicationService),
		Internal:       handlers.NewInternalHandler(cfg.Bot.Secret, applicationService, messageService),
		Patients:       handlers.NewPatientsHandler(patientService),
		Tariffs:        handlers.NewTariffsHandler(careService),
		Medications:    handlers.NewMedicationsHandler(medicationService),
		Wiki:           handlers.NewWikiHandler(wikiService),
		Shifts:         handlers.NewShiftsHandler(shiftService),
		Reminders:      handlers.NewRemindersHandler(reminderService),
		Audit:          handlers.NewAuditHandler(auditService),
		AuthMiddleware: authMiddleware,
		Redis:          redis,
		Logger:         logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
