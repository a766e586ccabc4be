// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/config"
	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/application/usecase/accounting"
	"github.com/ledgerly/backend/internal/application/usecase/assistant"
	infradb "github.com/ledgerly/backend/internal/infra/db"
	"github.com/ledgerly/backend/internal/infra/server/router"
	"github.com/ledgerly/backend/internal/integration/adapters"
	"github.com/ledgerly/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerly/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Aggregator *accounting.Aggregator
	Router     *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *Injector {
	// Repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	chatHistoryRepo := persistence.NewChatHistoryRepository(redisClient)

	// Adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	assistantService := newAssistantService(&cfg.Assistant)

	// Accounting session aggregator
	aggregator := accounting.NewAggregator(categoryRepo, transactionRepo, logger, cfg.Accounting.LoadTimeout)

	// Assistant use cases
	sendMessageUseCase := assistant.NewSendMessageUseCase(assistantService, chatHistoryRepo, logger)
	parseReceiptUseCase := assistant.NewParseReceiptUseCase(assistantService, logger)
	getHistoryUseCase := assistant.NewGetHistoryUseCase(chatHistoryRepo)
	clearHistoryUseCase := assistant.NewClearHistoryUseCase(chatHistoryRepo)

	// Controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		infradb.RedisHealthCheck(redisClient),
	)
	accountingController := controller.NewAccountingController(aggregator)
	categoryController := controller.NewCategoryController(aggregator)
	transactionController := controller.NewTransactionController(aggregator)
	reportController := controller.NewReportController(aggregator)
	exportController := controller.NewExportController(aggregator)
	assistantController := controller.NewAssistantController(
		sendMessageUseCase,
		parseReceiptUseCase,
		getHistoryUseCase,
		clearHistoryUseCase,
	)

	// Middleware
	assistantRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Assistant.RateLimit, cfg.Assistant.RateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		accountingController,
		categoryController,
		transactionController,
		reportController,
		exportController,
		assistantController,
		assistantRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		Aggregator: aggregator,
		Router:     r,
	}
}

// newAssistantService picks the AI backend: a configured HTTP endpoint
// wins, then Gemini. With neither the chat degrades to the apology
// reply and receipt parsing reports a parse failure.
func newAssistantService(cfg *config.AssistantConfig) adapter.AssistantService {
	if cfg.Endpoint != "" {
		return adapters.NewAssistantClient(cfg.Endpoint, cfg.Timeout)
	}
	return adapters.NewGeminiService(cfg.GeminiAPIKey)
}
